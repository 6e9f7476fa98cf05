package registry_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/registry"
	"github.com/rise-and-shine/mediator/result"
)

type getUser struct {
	query.Of[string]
	ID int
}

type renameUser struct {
	command.Of[bool]
	Name string
}

type deleteUser struct {
	command.NoResult
	ID int
}

type lookupUser struct {
	query.Of[string]
}

type userDeleted struct{ ID int }

func (userDeleted) EventName() string { return "user_deleted" }

type (
	intQuery   = query.Of[int]
	intCommand = command.Of[int]
)

type confused struct {
	intQuery
	intCommand
}

type counter struct{ n *atomic.Int32 }

func (c counter) Handle(_ context.Context, q getUser) result.Result[string] {
	c.n.Add(1)
	return result.Success("user")
}

func newBuilder() *registry.Builder {
	return registry.NewBuilder(registry.WithLogger(logger.Nop()))
}

func getUserHandler(name string) query.HandlerFunc[getUser, string] {
	return func(_ context.Context, _ getUser) result.Result[string] {
		return result.Success(name)
	}
}

func TestContract_String(t *testing.T) {
	tests := []struct {
		name     string
		contract registry.Contract
		want     string
	}{
		{"query", registry.QueryContract[getUser, string](), "query registry_test.getUser -> string"},
		{"command", registry.CommandContract[renameUser, bool](), "command registry_test.renameUser -> bool"},
		{"void command", registry.VoidCommandContract[deleteUser](), "void_command registry_test.deleteUser"},
		{"event", registry.EventContract[userDeleted](), "event registry_test.userDeleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.contract.String())
		})
	}
}

func TestShapesOf(t *testing.T) {
	assert.Equal(t, []registry.Kind{registry.KindQuery}, registry.ShapesOf(reflect.TypeFor[getUser]()))
	assert.Equal(t, []registry.Kind{registry.KindCommand}, registry.ShapesOf(reflect.TypeFor[renameUser]()))
	assert.Equal(t, []registry.Kind{registry.KindVoidCommand}, registry.ShapesOf(reflect.TypeFor[deleteUser]()))
	assert.Equal(t,
		[]registry.Kind{registry.KindQuery, registry.KindCommand},
		registry.ShapesOf(reflect.TypeFor[confused]()),
	)
	assert.Empty(t, registry.ShapesOf(reflect.TypeFor[userDeleted]()))
	assert.Empty(t, registry.ShapesOf(nil))
}

func TestRegistry_Resolve(t *testing.T) {
	b := newBuilder()
	registry.AddQuery(b, getUserHandler("alice"))
	registry.AddCommand(b, command.HandlerFunc[renameUser, bool](
		func(_ context.Context, c renameUser) result.Result[bool] {
			return result.Success(c.Name != "")
		}))
	registry.AddVoidCommand(b, command.VoidHandlerFunc[deleteUser](
		func(_ context.Context, _ deleteUser) result.Result[result.Empty] {
			return result.Ok()
		}))
	r, err := b.Build()
	require.NoError(t, err)

	t.Run("query", func(t *testing.T) {
		h, err := r.Resolve(t.Context(), registry.QueryContract[getUser, string]())
		require.NoError(t, err)

		typed, ok := h.Instance().(query.Handler[getUser, string])
		require.True(t, ok)
		assert.Equal(t, "alice", typed.Handle(t.Context(), getUser{ID: 1}).Value())

		out, err := h.Invoke(t.Context(), getUser{ID: 1})
		require.NoError(t, err)
		res, ok := out.(result.Result[string])
		require.True(t, ok)
		assert.Equal(t, "alice", res.Value())
	})

	t.Run("command", func(t *testing.T) {
		h, err := r.Resolve(t.Context(), registry.CommandContract[renameUser, bool]())
		require.NoError(t, err)

		out, err := h.Invoke(t.Context(), renameUser{Name: "bob"})
		require.NoError(t, err)
		assert.Equal(t, result.Success(true), out)
	})

	t.Run("void command", func(t *testing.T) {
		h, err := r.Resolve(t.Context(), registry.VoidCommandContract[deleteUser]())
		require.NoError(t, err)

		out, err := h.Invoke(t.Context(), deleteUser{ID: 1})
		require.NoError(t, err)
		assert.True(t, out.IsSuccess())
	})

	t.Run("unregistered contract", func(t *testing.T) {
		_, err := r.Resolve(t.Context(), registry.QueryContract[lookupUser, string]())
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeHandlerNotFound))
	})

	t.Run("message of another type", func(t *testing.T) {
		h, err := r.Resolve(t.Context(), registry.QueryContract[getUser, string]())
		require.NoError(t, err)

		_, err = h.Invoke(t.Context(), renameUser{})
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeMessageTypeMismatch))
	})
}

func TestRegistry_Wrappers(t *testing.T) {
	var calls []string
	trace := func(name string) cqrs.WrapFunc[getUser, string] {
		return func(next cqrs.Handler[getUser, string]) cqrs.Handler[getUser, string] {
			return cqrs.HandlerFunc[getUser, string](func(ctx context.Context, q getUser) result.Result[string] {
				calls = append(calls, name)
				return next.Handle(ctx, q)
			})
		}
	}

	b := newBuilder()
	registry.AddQuery(b, getUserHandler("alice"), trace("inner"), trace("outer"))
	r := b.MustBuild()

	h, err := r.Resolve(t.Context(), registry.QueryContract[getUser, string]())
	require.NoError(t, err)
	out, err := h.Invoke(t.Context(), getUser{})
	require.NoError(t, err)

	assert.True(t, out.IsSuccess())
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestBuilder_Build(t *testing.T) {
	t.Run("nil handler", func(t *testing.T) {
		b := newBuilder()
		registry.AddQuery[getUser, string](b, nil)

		_, err := b.Build()
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeNilHandler))
	})

	t.Run("nil factory", func(t *testing.T) {
		b := newBuilder()
		registry.AddScopedVoidCommand[deleteUser](b, nil)

		_, err := b.Build()
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeNilHandler))
	})

	t.Run("duplicate handler", func(t *testing.T) {
		b := newBuilder()
		registry.AddQuery(b, getUserHandler("alice"))
		registry.AddQuery(b, getUserHandler("bob"))

		_, err := b.Build()
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeDuplicateHandler))
	})

	t.Run("ambiguous shape", func(t *testing.T) {
		b := newBuilder()
		registry.AddQuery(b, query.HandlerFunc[confused, int](
			func(context.Context, confused) result.Result[int] { return result.Success(1) }))

		_, err := b.Build()
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeAmbiguousShape))
	})

	t.Run("several problems are reported together", func(t *testing.T) {
		b := newBuilder()
		registry.AddQuery[getUser, string](b, nil)
		registry.AddCommand(b, command.HandlerFunc[renameUser, bool](
			func(context.Context, renameUser) result.Result[bool] { return result.Success(true) }))
		registry.AddCommand(b, command.HandlerFunc[renameUser, bool](
			func(context.Context, renameUser) result.Result[bool] { return result.Success(false) }))

		_, err := b.Build()
		require.Error(t, err)

		var joined interface{ Unwrap() []error }
		require.ErrorAs(t, err, &joined)
		assert.Len(t, joined.Unwrap(), 2)
	})

	t.Run("must build panics", func(t *testing.T) {
		b := newBuilder()
		registry.AddQuery[getUser, string](b, nil)

		assert.Panics(t, func() { b.MustBuild() })
	})
}

func TestRegistry_Listing(t *testing.T) {
	b := newBuilder()
	registry.AddQuery(b, getUserHandler("alice"))
	registry.AddVoidCommand(b, command.VoidHandlerFunc[deleteUser](
		func(context.Context, deleteUser) result.Result[result.Empty] { return result.Ok() }))
	registry.AddEventHandler(b, event.HandlerFunc[userDeleted](
		func(context.Context, userDeleted) error { return nil }))
	registry.AddEventHandler(b, event.HandlerFunc[userDeleted](
		func(context.Context, userDeleted) error { return nil }))
	r := b.MustBuild()

	t.Run("contracts are sorted", func(t *testing.T) {
		assert.Equal(t, []registry.Contract{
			registry.EventContract[userDeleted](),
			registry.QueryContract[getUser, string](),
			registry.VoidCommandContract[deleteUser](),
		}, r.Contracts())
	})

	t.Run("has", func(t *testing.T) {
		assert.True(t, r.Has(registry.QueryContract[getUser, string]()))
		assert.True(t, r.Has(registry.EventContract[userDeleted]()))
		assert.False(t, r.Has(registry.CommandContract[renameUser, bool]()))
	})

	t.Run("require", func(t *testing.T) {
		require.NoError(t, r.Require(
			registry.QueryContract[getUser, string](),
			registry.VoidCommandContract[deleteUser](),
		))

		err := r.Require(
			registry.QueryContract[getUser, string](),
			registry.CommandContract[renameUser, bool](),
		)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, registry.CodeHandlerNotFound))
	})

	t.Run("resolve all keeps registration order", func(t *testing.T) {
		handlers := r.ResolveAll(t.Context(), reflect.TypeFor[userDeleted]())
		assert.Len(t, handlers, 2)

		assert.Empty(t, r.ResolveAll(t.Context(), reflect.TypeFor[getUser]()))
	})
}

func TestRegistry_EventInvoke(t *testing.T) {
	boom := errors.New("boom")

	b := newBuilder()
	registry.AddEventHandler(b, event.HandlerFunc[userDeleted](
		func(context.Context, userDeleted) error { return boom }))
	r := b.MustBuild()

	handlers := r.ResolveAll(t.Context(), reflect.TypeFor[userDeleted]())
	require.Len(t, handlers, 1)

	out, err := handlers[0].Invoke(t.Context(), userDeleted{ID: 1})
	require.NoError(t, err)
	assert.False(t, out.IsSuccess())
	assert.ErrorIs(t, out.Err(), boom)
}

func TestRegistry_ScopedLifetime(t *testing.T) {
	var created atomic.Int32
	calls := &atomic.Int32{}

	b := newBuilder()
	registry.AddScopedQuery(b, func() query.Handler[getUser, string] {
		created.Add(1)
		return counter{n: calls}
	})
	r := b.MustBuild()
	c := registry.QueryContract[getUser, string]()

	t.Run("no scope creates an instance per resolve", func(t *testing.T) {
		created.Store(0)
		for range 3 {
			_, err := r.Resolve(t.Context(), c)
			require.NoError(t, err)
		}
		assert.Equal(t, int32(3), created.Load())
	})

	t.Run("one instance per scope", func(t *testing.T) {
		created.Store(0)

		ctx := registry.WithScope(t.Context())
		for range 3 {
			_, err := r.Resolve(ctx, c)
			require.NoError(t, err)
		}
		assert.Equal(t, int32(1), created.Load())

		other := registry.WithScope(t.Context())
		_, err := r.Resolve(other, c)
		require.NoError(t, err)
		assert.Equal(t, int32(2), created.Load())
	})

	t.Run("scope is concurrency safe", func(t *testing.T) {
		created.Store(0)
		ctx := registry.WithScope(t.Context())

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h, err := r.Resolve(ctx, c)
				assert.NoError(t, err)
				_, err = h.Invoke(ctx, getUser{})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), created.Load())
		s, ok := registry.ScopeFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, 1, s.Len())
	})
}

func TestWithScope(t *testing.T) {
	_, ok := registry.ScopeFromContext(t.Context())
	assert.False(t, ok)

	ctx := registry.WithScope(t.Context())
	s, ok := registry.ScopeFromContext(ctx)
	require.True(t, ok)
	assert.NotEmpty(t, s.ID())

	id, err := meta.ShouldGetMeta(ctx, meta.ScopeID)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), id)
}

func TestBuilder_Install(t *testing.T) {
	queries := registry.ModuleFunc(func(b *registry.Builder) {
		registry.AddQuery(b, getUserHandler("alice"))
	})
	commands := registry.ModuleFunc(func(b *registry.Builder) {
		registry.AddVoidCommand(b, command.VoidHandlerFunc[deleteUser](
			func(context.Context, deleteUser) result.Result[result.Empty] { return result.Ok() }))
	})

	r := newBuilder().Install(queries, commands).MustBuild()

	assert.NoError(t, r.Require(
		registry.QueryContract[getUser, string](),
		registry.VoidCommandContract[deleteUser](),
	))
}
