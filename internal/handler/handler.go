package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/consumer-router/internal/metrics"
	"github.com/angeloszaimis/consumer-router/internal/pipeline"
	"github.com/angeloszaimis/consumer-router/internal/reqctx"
)

// ServiceIDHeader carries the resolved service id on responses.
const ServiceIDHeader = "X-Service-Id"

type RoutingHandler struct {
	logger           *slog.Logger
	chain            *pipeline.Chain
	metricsCollector *metrics.Collector
}

// Decision is the response body of the routing endpoint.
type Decision struct {
	RequestID string `json:"request_id"`
	Host      string `json:"host"`
	Path      string `json:"path"`
	ServiceID string `json:"service_id,omitempty"`
	Resolved  bool   `json:"resolved"`
}

func (h *RoutingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := reqctx.FromRequest(r)

	h.logger.Info("Received request",
		slog.String("request_id", ctx.RequestID()),
		slog.String("from", extractClientIP(r)),
		slog.String("method", r.Method),
		slog.String("host", ctx.Host()),
		slog.String("path", ctx.Path()),
		slog.String("proto", r.Proto))

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestReceived,
		Timestamp: time.Now(),
		Host:      ctx.Host(),
	})

	h.chain.Run(ctx)

	serviceID, resolved := ctx.ServiceID()
	decision := Decision{
		RequestID: ctx.RequestID(),
		Host:      ctx.Host(),
		Path:      ctx.Path(),
		ServiceID: serviceID,
		Resolved:  resolved,
	}

	if resolved {
		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventServiceResolved,
			Timestamp: time.Now(),
			Host:      ctx.Host(),
			ServiceID: serviceID,
		})
		w.Header().Set(ServiceIDHeader, serviceID)

		h.logger.Info("Resolved service",
			slog.String("request_id", ctx.RequestID()),
			slog.String("service_id", serviceID))
	} else {
		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventUnresolved,
			Timestamp: time.Now(),
			Host:      ctx.Host(),
		})

		h.logger.Info("No routing decision",
			slog.String("request_id", ctx.RequestID()),
			slog.String("host", ctx.Host()))
	}

	w.Header().Set(reqctx.RequestIDHeader, ctx.RequestID())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(decision); err != nil {
		h.logger.Error("Failed to write decision",
			slog.String("request_id", ctx.RequestID()),
			slog.Any("err", err))
	}
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func (h *RoutingHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}

	h.metricsCollector.Emit(event)
}

// NewRoutingHandler creates the routing endpoint. collector may be nil.
func NewRoutingHandler(logger *slog.Logger, chain *pipeline.Chain, collector *metrics.Collector) *RoutingHandler {
	return &RoutingHandler{
		logger:           logger,
		chain:            chain,
		metricsCollector: collector,
	}
}
