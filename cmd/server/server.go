package main

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/equalsplit/internal/config"
	"github.com/mmynk/equalsplit/internal/metrics"
	"github.com/mmynk/equalsplit/internal/middleware"
	"github.com/mmynk/equalsplit/internal/service"
	"github.com/mmynk/equalsplit/internal/storage"
	"github.com/mmynk/equalsplit/pkg/api"
)

// newHandler assembles the RPC services, metrics and health endpoints behind
// CORS, request logging and h2c.
func newHandler(cfg *config.Config, store storage.Store, m *metrics.Metrics, limiter *middleware.RateLimiter) http.Handler {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()

	// Register Connect services
	settlePath, settleHandler := api.NewSettleServiceHandler(service.NewSettleService(cfg.Currency, m), interceptors)
	mux.Handle(settlePath, limiter.Middleware(settleHandler))

	rosterPath, rosterHandler := api.NewRosterServiceHandler(service.NewRosterService(store, cfg.Currency, m), interceptors)
	mux.Handle(rosterPath, limiter.Middleware(rosterHandler))

	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// CORS for browser access
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         3600,
	}).Handler(mux)

	// Wrap with h2c for HTTP/2 without TLS
	return h2c.NewHandler(middleware.RequestLogger(corsHandler), &http2.Server{})
}
