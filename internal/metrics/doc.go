// Package metrics collects routing decision metrics.
//
// It uses a channel-based event pipeline to asynchronously count:
//   - Requests seen by the decision endpoint
//   - Decisions per service id
//   - Requests that no rule resolved
//
// The collector runs in a dedicated goroutine and processes events without blocking
// the request path. Events are sent via a buffered channel with non-blocking semantics.
// Every processed event updates both an in-memory store, served as a JSON snapshot,
// and a private Prometheus registry.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:      metrics.EventServiceResolved,
//		ServiceID: "consumer-web",
//	}
//
//	snapshot := collector.Snapshot()
package metrics
