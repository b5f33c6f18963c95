package main

import (
	"net/http"

	"github.com/angeloszaimis/consumer-router/internal/handler"
	"github.com/angeloszaimis/consumer-router/internal/metrics"
)

// Service endpoints live under /_router/ so that every other path reaches
// the routing handler.
func setupRouter(routingHandler *handler.RoutingHandler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/", routingHandler)
	mux.HandleFunc("GET /_router/stats", metricsCollector.Handler())
	mux.Handle("GET /_router/metrics", metricsCollector.PrometheusHandler())
	mux.HandleFunc("GET /_router/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}
