package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventRequestReceived EventType = "request_received"
	EventServiceResolved EventType = "service_resolved"
	EventUnresolved      EventType = "unresolved"
)

const defaultBufferSize = 1000

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Host      string
	ServiceID string
}

type Collector struct {
	eventCh    chan MetricEvent
	metrics    *Metrics
	prometheus *Prometheus
	logger     *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	if bufferSize < 1 {
		bufferSize = defaultBufferSize
	}

	return &Collector{
		eventCh:    make(chan MetricEvent, bufferSize),
		metrics:    NewMetrics(),
		prometheus: NewPrometheus(),
		logger:     logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// Emit queues event without blocking. Events are dropped when the buffer
// is full.
func (c *Collector) Emit(event MetricEvent) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Metrics buffer full, dropping event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventRequestReceived:
		c.prometheus.requests.Inc()
		c.metrics.IncrementRequests()

	case EventServiceResolved:
		c.prometheus.decisions.WithLabelValues(event.ServiceID).Inc()
		c.metrics.RecordDecision(event.ServiceID)

	case EventUnresolved:
		c.prometheus.unresolved.Inc()
		c.metrics.RecordUnresolved()
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
