package registry

import (
	"context"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/rise-and-shine/mediator/logger"
)

// Registry maps contracts to handlers. It is read-only after Build and safe
// for concurrent use.
type Registry struct {
	handlers map[Contract]*entry
	events   map[reflect.Type][]*entry
	logger   logger.Logger
}

// Resolve returns the handler registered for c. Scoped handlers are bound to
// the scope found in ctx.
func (r *Registry) Resolve(ctx context.Context, c Contract) (Handler, error) {
	e, ok := r.handlers[c]
	if !ok {
		return nil, errx.New("[registry]: no handler registered for contract",
			errx.WithCode(CodeHandlerNotFound),
			errx.WithDetails(errx.D{"contract": c.String()}),
		)
	}
	return boundHandler{entry: e, instance: r.instance(ctx, e)}, nil
}

// ResolveAll returns the handlers registered for events of type eventType in
// registration order. The result is empty if there are none.
func (r *Registry) ResolveAll(ctx context.Context, eventType reflect.Type) []Handler {
	entries := r.events[eventType]
	return lo.Map(entries, func(e *entry, _ int) Handler {
		return boundHandler{entry: e, instance: r.instance(ctx, e)}
	})
}

// Has reports whether at least one handler is registered for c.
func (r *Registry) Has(c Contract) bool {
	if c.Kind == KindEvent {
		return len(r.events[c.Message]) > 0
	}
	_, ok := r.handlers[c]
	return ok
}

// Contracts lists every registered contract sorted by its string form.
func (r *Registry) Contracts() []Contract {
	contracts := lo.Keys(r.handlers)
	for _, entries := range r.events {
		contracts = append(contracts, entries[0].contract)
	}
	slices.SortFunc(contracts, func(a, b Contract) int {
		return strings.Compare(a.String(), b.String())
	})
	return contracts
}

// Require checks that every contract in cs has a handler. The returned error
// lists all missing contracts.
func (r *Registry) Require(cs ...Contract) error {
	missing := lo.Filter(cs, func(c Contract, _ int) bool {
		return !r.Has(c)
	})
	if len(missing) == 0 {
		return nil
	}

	return errx.New("[registry]: required handlers are not registered",
		errx.WithCode(CodeHandlerNotFound),
		errx.WithDetails(errx.D{
			"missing": lo.Map(missing, func(c Contract, _ int) string { return c.String() }),
		}),
	)
}

func (r *Registry) instance(ctx context.Context, e *entry) any {
	if e.lifetime == Singleton {
		return e.instance
	}
	if s, ok := ScopeFromContext(ctx); ok {
		return s.instance(e)
	}
	return e.factory()
}
