// Package reqctx holds the request-scoped state shared by the filters of a
// routing pipeline. A Context carries the inputs a filter reads (host name,
// request path, request id) and the routing signals filters write (forward
// target, service id). It replaces a generic key/value bag with named
// accessors for exactly those signals.
package reqctx
