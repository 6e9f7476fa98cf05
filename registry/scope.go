package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rise-and-shine/mediator/meta"
)

// Scope is a unit of work. Scoped handlers resolved within the same scope
// share one instance.
type Scope struct {
	id string

	mu        sync.Mutex
	instances map[*entry]any
}

type scopeKey struct{}

// WithScope opens a new scope and returns a context carrying it. The scope id
// is also stored in the context metadata under meta.ScopeID.
func WithScope(ctx context.Context) context.Context {
	s := &Scope{
		id:        uuid.NewString(),
		instances: make(map[*entry]any),
	}
	ctx = context.WithValue(ctx, scopeKey{}, s)
	return meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.ScopeID: s.id})
}

// ScopeFromContext returns the scope opened by WithScope, if any.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}

// ID returns the scope identifier.
func (s *Scope) ID() string {
	return s.id
}

// Len returns the number of handler instances created in this scope.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

func (s *Scope) instance(e *entry) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.instances[e]; ok {
		return v
	}
	v := e.factory()
	s.instances[e] = v
	return v
}
