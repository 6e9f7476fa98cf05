package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // Global variables are required for the global alert singleton pattern
var (
	global   atomic.Value // stores Provider
	setOnce  sync.Once    // ensures SetGlobal is called once
	initOnce sync.Once    // ensures lazy initialization happens once
)

// SetGlobal sets the global alert provider instance.
// It should be called once during application startup, before any alert is sent.
// Returns an error if the provider creation fails or SetGlobal is called more than once.
func SetGlobal(cfg Config, serviceName, serviceVersion string) error {
	var err error
	called := false

	setOnce.Do(func() {
		called = true

		// Prevent lazy initialization from happening after this
		initOnce.Do(func() {})

		provider, providerErr := NewProvider(cfg, serviceName, serviceVersion)
		if providerErr != nil {
			err = fmt.Errorf("[alert]: failed to initialize global alert provider: %w", providerErr)
			global.Store(NoOp())
			return
		}
		global.Store(provider)
	})

	if !called {
		return errors.New("[alert]: SetGlobal can only be called once")
	}

	return err
}

// Global returns the global provider. It is a no-op provider until SetGlobal succeeds.
func Global() Provider {
	if p, ok := global.Load().(Provider); ok {
		return p
	}
	initOnce.Do(func() {
		global.Store(NoOp())
	})
	provider, ok := global.Load().(Provider)
	if !ok {
		panic("[alert]: global contains invalid type after initialization")
	}
	return provider
}

// SendError sends an error alert using the global provider.
func SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error {
	return Global().SendError(ctx, errCode, msg, operation, details)
}
