// Package providers contains dependency injection providers for the Stillframe server.
package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/stillframe/stillframe-server/internal/api"
	"github.com/stillframe/stillframe-server/internal/auth"
	"github.com/stillframe/stillframe-server/internal/config"
	"github.com/stillframe/stillframe-server/internal/logger"
	"github.com/stillframe/stillframe-server/internal/ratelimit"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Stillframe Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"web_root", cfg.Gallery.WebRoot,
		"manifest_path", cfg.Gallery.ManifestPath,
	)

	return log, nil
}

// ProvideAuthenticator provides the shared-secret session authenticator.
func ProvideAuthenticator(i do.Injector) (auth.Authenticator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return auth.NewSharedSecret(cfg.Auth.Password, cfg.Auth.SessionSecret)
}

// ProvideLoginLimiter provides the per-IP login rate limiter.
func ProvideLoginLimiter(i do.Injector) (*ratelimit.KeyedRateLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return ratelimit.New(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst), nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer builds the API server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	authenticator := do.MustInvoke[auth.Authenticator](i)
	loginLimiter := do.MustInvoke[*ratelimit.KeyedRateLimiter](i)

	handler := api.NewServer(cfg, authenticator, loginLimiter, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
