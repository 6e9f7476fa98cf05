// Package alert sends handler failures to an external error tracking service.
package alert

import "context"

// Provider defines the interface for sending error alerts.
type Provider interface {
	// SendError sends an error alert. operation names the message being handled;
	// details carries request metadata such as the trace id.
	SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error
}

// NewProvider creates the provider described by cfg. A disabled config yields
// a provider that drops every alert.
func NewProvider(cfg Config, serviceName, serviceVersion string) (Provider, error) {
	if cfg.Disable {
		return NoOp(), nil
	}
	return NewSentinelProvider(cfg, serviceName, serviceVersion)
}

// NoOp returns a provider that does nothing.
func NoOp() Provider {
	return &noOpProvider{}
}

type noOpProvider struct{}

func (n *noOpProvider) SendError(
	_ context.Context,
	_, _, _ string,
	_ map[string]string,
) error {
	return nil
}
