// Package router wires the HTTP middleware chain and routes.
package router

import (
	"net/http"

	"fuelstation-service/internal/infrastructure/config"
	"fuelstation-service/internal/interface/handler"
	"fuelstation-service/pkg/logger"
	"fuelstation-service/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the HTTP surface. The api-key gate wraps the router
// itself, so every request except the operational endpoints answers
// 403 before any route matching; request-id, logging, metrics and
// recovery run on the matched /fuel-stations routes.
func New(cfg *config.Config, log logger.Logger, m *metrics.Metrics, stations *handler.FuelStationHandler) http.Handler {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/fuel-stations").Subrouter()
	api.Use(requestIDMiddleware)
	api.Use(loggingMiddleware(log))
	api.Use(metricsMiddleware(m))
	api.Use(recoveryMiddleware(log, cfg.IsProduction()))

	stations.Register(api)

	guarded := apiKeyMiddleware(cfg.APIKey)(r)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/health", "/metrics":
			r.ServeHTTP(w, req)
		default:
			guarded.ServeHTTP(w, req)
		}
	})
}
