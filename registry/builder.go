package registry

import (
	"errors"
	"reflect"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/result"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used by the builder and the registry it builds.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder collects handler registrations. It is not safe for concurrent use;
// register everything at startup and call Build once.
//
// Go doesn't support generic methods, so registrations are package functions
// taking the builder: registry.AddQuery(b, handler, wraps...).
type Builder struct {
	entries []*entry
	errs    []error
	logger  logger.Logger
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: logger.Named("cqrs.registry")}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Module groups the registrations of one feature.
type Module interface {
	Register(b *Builder)
}

// ModuleFunc adapts a function to Module.
type ModuleFunc func(b *Builder)

func (f ModuleFunc) Register(b *Builder) {
	f(b)
}

// Install lets every module register its handlers.
func (b *Builder) Install(modules ...Module) *Builder {
	for _, m := range modules {
		m.Register(b)
	}
	return b
}

// AddQuery registers a singleton handler for queries Q.
func AddQuery[Q query.Query[R], R any](b *Builder, h query.Handler[Q, R], wraps ...cqrs.WrapFunc[Q, R]) {
	c := QueryContract[Q, R]()
	if h == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Singleton,
		instance: cqrs.Chain[Q, R](h, wraps...),
		invoke:   invokeQuery[Q, R],
	})
}

// AddScopedQuery registers a factory building one handler for queries Q per scope.
func AddScopedQuery[Q query.Query[R], R any](
	b *Builder,
	factory func() query.Handler[Q, R],
	wraps ...cqrs.WrapFunc[Q, R],
) {
	c := QueryContract[Q, R]()
	if factory == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Scoped,
		factory:  func() any { return cqrs.Chain[Q, R](factory(), wraps...) },
		invoke:   invokeQuery[Q, R],
	})
}

// AddCommand registers a singleton handler for commands C.
func AddCommand[C command.Command[R], R any](b *Builder, h command.Handler[C, R], wraps ...cqrs.WrapFunc[C, R]) {
	c := CommandContract[C, R]()
	if h == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Singleton,
		instance: cqrs.Chain[C, R](h, wraps...),
		invoke:   invokeCommand[C, R],
	})
}

// AddScopedCommand registers a factory building one handler for commands C per scope.
func AddScopedCommand[C command.Command[R], R any](
	b *Builder,
	factory func() command.Handler[C, R],
	wraps ...cqrs.WrapFunc[C, R],
) {
	c := CommandContract[C, R]()
	if factory == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Scoped,
		factory:  func() any { return cqrs.Chain[C, R](factory(), wraps...) },
		invoke:   invokeCommand[C, R],
	})
}

// AddVoidCommand registers a singleton handler for commands C that produce no value.
func AddVoidCommand[C command.Void](
	b *Builder,
	h command.VoidHandler[C],
	wraps ...cqrs.WrapFunc[C, result.Empty],
) {
	c := VoidCommandContract[C]()
	if h == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Singleton,
		instance: cqrs.Chain[C, result.Empty](h, wraps...),
		invoke:   invokeVoidCommand[C],
	})
}

// AddScopedVoidCommand registers a factory building one handler for void commands C per scope.
func AddScopedVoidCommand[C command.Void](
	b *Builder,
	factory func() command.VoidHandler[C],
	wraps ...cqrs.WrapFunc[C, result.Empty],
) {
	c := VoidCommandContract[C]()
	if factory == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Scoped,
		factory:  func() any { return cqrs.Chain[C, result.Empty](factory(), wraps...) },
		invoke:   invokeVoidCommand[C],
	})
}

// AddEventHandler registers h for events E. An event type may have any number
// of handlers; they run in registration order.
func AddEventHandler[E event.Event](b *Builder, h event.Handler[E]) {
	c := EventContract[E]()
	if h == nil {
		b.nilHandler(c)
		return
	}
	b.add(&entry{
		contract: c,
		lifetime: Singleton,
		instance: h,
		invoke:   invokeEvent[E],
	})
}

func (b *Builder) add(e *entry) {
	b.entries = append(b.entries, e)
}

func (b *Builder) nilHandler(c Contract) {
	b.errs = append(b.errs, errx.New("[registry]: nil handler registered",
		errx.WithCode(CodeNilHandler),
		errx.WithDetails(errx.D{"contract": c.String()}),
	))
}

// Build validates the registrations and returns an immutable registry.
// All problems found are reported together.
func (b *Builder) Build() (*Registry, error) {
	errs := append([]error(nil), b.errs...)

	handlers := make(map[Contract]*entry)
	events := make(map[reflect.Type][]*entry)
	checked := make(map[reflect.Type]bool)

	for _, e := range b.entries {
		if !checked[e.contract.Message] {
			checked[e.contract.Message] = true
			if shapes := ShapesOf(e.contract.Message); len(shapes) > 1 {
				errs = append(errs, ambiguousShape(e.contract.Message, shapes))
				continue
			}
		}

		if e.contract.Kind == KindEvent {
			events[e.contract.Message] = append(events[e.contract.Message], e)
			continue
		}

		if _, ok := handlers[e.contract]; ok {
			errs = append(errs, errx.New("[registry]: more than one handler registered",
				errx.WithCode(CodeDuplicateHandler),
				errx.WithDetails(errx.D{"contract": e.contract.String()}),
			))
			continue
		}
		handlers[e.contract] = e

		b.logger.With(
			"contract", e.contract.String(),
			"lifetime", e.lifetime.String(),
		).Debug("[registry]: handler registered")
	}

	switch len(errs) {
	case 0:
	case 1:
		return nil, errs[0]
	default:
		return nil, errors.Join(errs...)
	}

	return &Registry{
		handlers: handlers,
		events:   events,
		logger:   b.logger,
	}, nil
}

// MustBuild is like Build but panics on invalid registrations.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

func ambiguousShape(t reflect.Type, shapes []Kind) error {
	names := make([]string, 0, len(shapes))
	for _, k := range shapes {
		names = append(names, k.String())
	}
	return errx.New("[registry]: message type declares more than one shape",
		errx.WithCode(CodeAmbiguousShape),
		errx.WithDetails(errx.D{
			"message": typeName(t),
			"shapes":  names,
		}),
	)
}
