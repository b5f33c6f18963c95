// Package httpserver wraps net/http's Server with address validation,
// configurable timeouts and bounded graceful shutdown.
package httpserver
