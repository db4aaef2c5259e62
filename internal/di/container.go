// Package di provides dependency injection configuration for the Stillframe server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/stillframe/stillframe-server/internal/auth"
	"github.com/stillframe/stillframe-server/internal/config"
	"github.com/stillframe/stillframe-server/internal/di/providers"
	"github.com/stillframe/stillframe-server/internal/logger"
	"github.com/stillframe/stillframe-server/internal/ratelimit"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Auth layer
	do.Provide(injector, providers.ProvideAuthenticator)
	do.Provide(injector, providers.ProvideLoginLimiter)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[auth.Authenticator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*ratelimit.KeyedRateLimiter](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
