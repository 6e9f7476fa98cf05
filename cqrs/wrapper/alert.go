package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/alert"
	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/result"
)

const alertTimeout = 3 * time.Second

// AlertWrapper reports internal failures to an alert.Provider. Alerts are
// sent in the background and never change the handler's result.
type AlertWrapper[M, R any] struct {
	logger   logger.Logger
	provider alert.Provider
	next     cqrs.Handler[M, R]
}

// NewAlertWrapper creates an AlertWrapper. A nil provider means the global one.
// Only failures of type errx.T_Internal are reported.
func NewAlertWrapper[M, R any](log logger.Logger, provider alert.Provider) cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		if provider == nil {
			provider = alert.Global()
		}
		return &AlertWrapper[M, R]{
			logger:   log.Named("cqrs.alerting"),
			provider: provider,
			next:     next,
		}
	}
}

func (w *AlertWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	res := w.next.Handle(ctx, msg)
	if res.IsSuccess() {
		return res
	}

	e := errx.AsErrorX(res.Err())
	if e.Type() != errx.T_Internal {
		return res
	}

	operation := messageKind[M]() + ": " + operationID(msg)

	details := make(map[string]string)
	details["error_trace"] = e.Trace()
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		details[string(k)] = v
	}

	newCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)

	go func() {
		defer cancel() // ensure newCtx is cancelled after sending alert

		sendErr := w.provider.SendError(newCtx, e.Code(), e.Error(), operation, details)
		if sendErr != nil {
			w.logger.WithContext(ctx).With("alert_send_error", sendErr.Error()).Warn("failed to send error alert")
		}
	}()

	return res
}
