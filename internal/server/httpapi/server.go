// Package httpapi exposes the typed RPC surface over HTTP: JSON request and
// response envelopes, bearer-token authentication, per-client rate limiting
// on the credential endpoints, and the health and metrics endpoints.
package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/dmaia/clipstream/internal/logging"
	"github.com/dmaia/clipstream/internal/server/config"
	"github.com/dmaia/clipstream/internal/server/metrics"
	"github.com/dmaia/clipstream/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address   string
	users     *services.UserService
	media     *services.MediaService
	db        *sql.DB
	logger    logging.Logger
	jwtSecret []byte
	metrics   metrics.Collector
	gatherer  prometheus.Gatherer
	limiter   *RateLimiter
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ms *services.MediaService, db *sql.DB) (*Server, error) {
	reg := prometheus.NewRegistry()

	return &Server{
		address:   cfg.EndpointAddr,
		users:     us,
		media:     ms,
		db:        db,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(cfg.SecretKey),
		metrics:   metrics.NewCollector(reg),
		gatherer:  reg,
		limiter:   NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err.Error())
		}
		s.limiter.Stop()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
