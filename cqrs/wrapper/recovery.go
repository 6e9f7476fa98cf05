package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/result"
)

const stackTraceSize = 4096 // 4KB

// RecoveryWrapper turns a panicking handler into a failed result.
type RecoveryWrapper[M, R any] struct {
	logger logger.Logger
	next   cqrs.Handler[M, R]
}

// NewRecoveryWrapper creates a RecoveryWrapper. The failure carries code
// PANIC_RECOVERED and the stack trace in its details.
func NewRecoveryWrapper[M, R any](log logger.Logger) cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		return &RecoveryWrapper[M, R]{
			logger: log.Named("cqrs.recovery").With("operation_id", typeName[M]()),
			next:   next,
		}
	}
}

func (w *RecoveryWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	res, recovered := handleWithRecovery(ctx, w.next, msg)
	if recovered {
		w.logger.WithContext(ctx).Errorx(res.Err())
	}
	return res
}

// handleWithRecovery calls next and reports whether it panicked.
func handleWithRecovery[M, R any](
	ctx context.Context,
	next cqrs.Handler[M, R],
	msg M,
) (res result.Result[R], recovered bool) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			res = result.Failure[R](errx.New("[wrapper]: panic recovered in handler",
				errx.WithCode(CodePanicRecovered),
				errx.WithType(errx.T_Internal),
				errx.WithDetails(errx.D{
					"stack_trace":  string(stackTrace),
					"panic_values": fmt.Sprintf("%v", r),
				}),
			))
			recovered = true
		}
	}()

	return next.Handle(ctx, msg), false
}
