package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/mask"
	"github.com/rise-and-shine/mediator/result"
)

// LoggerWrapper logs every handled message with its duration and outcome.
// Message fields tagged `mask:"true"` are hidden.
type LoggerWrapper[M, R any] struct {
	logger logger.Logger
	next   cqrs.Handler[M, R]
}

// NewLoggerWrapper creates a LoggerWrapper. Panics in the handler are
// recovered so that they are logged as failures.
func NewLoggerWrapper[M, R any](log logger.Logger) cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		return &LoggerWrapper[M, R]{
			logger: log.Named("cqrs.logger").With("message_kind", messageKind[M]()),
			next:   next,
		}
	}
}

func (w *LoggerWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	start := time.Now()

	res, _ := handleWithRecovery(ctx, w.next, msg)

	log := w.logger.
		WithContext(ctx).
		With(
			"operation_id", operationID(msg),
			"execution_time", time.Since(start).String(),
			"message", mask.StructToOrdMap(msg),
		)

	const logMsg = "handled message"
	if res.IsSuccess() {
		log.Info(logMsg)
		return res
	}

	log = log.With("error", errorObject(res.Err()))
	if errx.GetType(res.Err()) == errx.T_Internal {
		log.Error(logMsg)
	} else {
		log.Warn(logMsg)
	}
	return res
}

func errorObject(err error) map[string]any {
	e := errx.AsErrorX(err)
	return map[string]any{
		"code":    e.Code(),
		"message": e.Error(),
		"type":    e.Type().String(),
		"trace":   e.Trace(),
		"fields":  e.Fields(),
		"details": e.Details(),
	}
}
