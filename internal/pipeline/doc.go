// Package pipeline runs an ordered chain of request filters.
//
// Filters are grouped by type (pre, route, post) and, within a type, by
// their order value. Each filter decides through ShouldApply whether it
// runs for a given request, which lets early filters defer to decisions
// already recorded in the request context.
package pipeline
