// Package meta carries request metadata through context for logging and tracing.
package meta

import (
	"context"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID correlates all log lines and spans of one logical request.
	TraceID ContextKey = "trace_id"

	// ServiceName identifies the name of the current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// OperationID names the message being handled, e.g. "users.GetUserByID".
	OperationID ContextKey = "operation_id"

	// MessageKind is the shape of the message being handled: query, command or void_command.
	MessageKind ContextKey = "message_kind"

	// ScopeID identifies the unit of work that scoped handlers are bound to.
	ScopeID ContextKey = "scope_id"

	// ActorID identifies who issued the message.
	ActorID ContextKey = "actor_id"

	// ActorType indicates the kind of actor that issued the message.
	ActorType ContextKey = "actor_type"
)

func keys() []ContextKey {
	return []ContextKey{
		TraceID,
		ServiceName,
		ServiceVersion,
		OperationID,
		MessageKind,
		ScopeID,
		ActorID,
		ActorType,
	}
}

// InjectMetaToContext adds the non-empty values of data to ctx.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns all predefined keys holding a non-empty string.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range keys() {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// ShouldGetMeta returns the value stored under key. It fails when the key is absent
// or holds something other than a string.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New("[meta]: key not found", errx.WithDetails(errx.D{"key": string(key)}))
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New("[meta]: type mismatch", errx.WithDetails(errx.D{"key": string(key)}))
	}
	return v, nil
}
