package reqctx

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader is honoured on inbound requests and echoed on responses.
const RequestIDHeader = "X-Request-Id"

// Context is owned by a single request and is not safe for concurrent use.
type Context struct {
	requestID     string
	host          string
	path          string
	forwardTarget string
	serviceID     string
}

// New creates a context for the given server name and request path.
// An empty host means the request carried none.
func New(host, path string) *Context {
	return &Context{
		requestID: uuid.NewString(),
		host:      host,
		path:      path,
	}
}

// FromRequest extracts the server name and escaped path from r. The port,
// if any, is dropped from the host and the query string is never part of
// the path.
func FromRequest(r *http.Request) *Context {
	ctx := New(serverName(r.Host), r.URL.EscapedPath())

	if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" {
		ctx.requestID = id
	}

	return ctx
}

func (c *Context) RequestID() string {
	return c.requestID
}

func (c *Context) Host() string {
	return c.host
}

func (c *Context) Path() string {
	return c.path
}

// HasForwardTarget reports whether an upstream filter already chose a
// direct URL for this request.
func (c *Context) HasForwardTarget() bool {
	return c.forwardTarget != ""
}

func (c *Context) ForwardTarget() string {
	return c.forwardTarget
}

func (c *Context) SetForwardTarget(target string) {
	c.forwardTarget = target
}

// HasServiceID reports whether a service id has been assigned.
func (c *Context) HasServiceID() bool {
	return c.serviceID != ""
}

// ServiceID returns the assigned service id and whether one is set.
func (c *Context) ServiceID() (string, bool) {
	return c.serviceID, c.serviceID != ""
}

func (c *Context) SetServiceID(id string) {
	c.serviceID = id
}

func serverName(hostport string) string {
	if hostport == "" {
		return ""
	}

	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		// no port present
		return strings.Trim(hostport, "[]")
	}

	return host
}
