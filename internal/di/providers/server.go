package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/brewlogapp/brewlog-server/internal/api"
	"github.com/brewlogapp/brewlog-server/internal/config"
	"github.com/brewlogapp/brewlog-server/internal/logger"
	"github.com/brewlogapp/brewlog-server/internal/ratelimit"
	"github.com/brewlogapp/brewlog-server/internal/service"
)

// RateLimiterHandle wraps the keyed rate limiter with Shutdownable.
// A nil limiter means rate limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter != nil {
		h.Limiter.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client request rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Server.RateLimitRPS <= 0 {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	log.Info("Rate limiting enabled",
		"rps", cfg.Server.RateLimitRPS,
		"burst", cfg.Server.RateLimitBurst,
	)

	return &RateLimiterHandle{
		Limiter: ratelimit.New(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	authService := do.MustInvoke[*service.AuthService](i)
	bagService := do.MustInvoke[*service.BagService](i)
	brewService := do.MustInvoke[*service.BrewService](i)
	analyticsService := do.MustInvoke[*service.AnalyticsService](i)
	feedService := do.MustInvoke[*service.FeedService](i)

	handler := api.NewServer(
		authService,
		bagService,
		brewService,
		analyticsService,
		feedService,
		limiterHandle.Limiter,
		cfg.Server.CORSOrigins,
		log.Logger,
	)

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

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
