// Package handler implements the HTTP entry point of the routing service.
// It builds a request context from the inbound request, runs the filter
// chain and reports the resulting routing decision.
package handler
