package routing

import (
	"log/slog"
	"strings"

	"github.com/angeloszaimis/consumer-router/internal/pipeline"
	"github.com/angeloszaimis/consumer-router/internal/reqctx"
)

const (
	DefaultConsumerDomain      = "local-dev-consumer-web.com"
	DefaultConsumerAdminDomain = "admin.local-dev-consumer-web.com"
)

const (
	ServiceConsumerWeb            = "consumer-web"
	ServiceConsumerWebStatic      = "consumer-web-static"
	ServiceConsumerWebAdmin       = "consumer-web-admin"
	ServiceConsumerWebAdminOther  = "consumer-web-admin-other"
	ServiceConsumerWebAdminStatic = "consumer-web-admin-static"
)

// Config holds the two domain names the router recognises. It is passed
// by value and never modified after construction.
type Config struct {
	ConsumerDomain      string
	ConsumerAdminDomain string
}

func DefaultConfig() Config {
	return Config{
		ConsumerDomain:      DefaultConsumerDomain,
		ConsumerAdminDomain: DefaultConsumerAdminDomain,
	}
}

type Router struct {
	cfg    Config
	tables []hostTable
	logger *slog.Logger
}

func NewRouter(cfg Config, logger *slog.Logger) *Router {
	return &Router{
		cfg:    cfg,
		tables: decisionTables(cfg),
		logger: logger,
	}
}

func (r *Router) Type() pipeline.FilterType {
	return pipeline.Pre
}

func (r *Router) Order() int {
	return 0
}

func (r *Router) Config() Config {
	return r.cfg
}

// ShouldApply is false once an upstream filter has set either a forward
// target or a service id.
func (r *Router) ShouldApply(ctx *reqctx.Context) bool {
	return !ctx.HasForwardTarget() && !ctx.HasServiceID()
}

// Run records the service id for the request, if any rule matches.
func (r *Router) Run(ctx *reqctx.Context) {
	serviceID, ok := r.Resolve(ctx.Host(), ctx.Path())
	if !ok {
		r.logger.Debug("No routing decision",
			slog.String("request_id", ctx.RequestID()),
			slog.String("host", ctx.Host()),
			slog.String("path", ctx.Path()))
		return
	}

	ctx.SetServiceID(serviceID)

	r.logger.Debug("Routing decision",
		slog.String("request_id", ctx.RequestID()),
		slog.String("host", ctx.Host()),
		slog.String("path", ctx.Path()),
		slog.String("service_id", serviceID))
}

// Resolve returns the service id for host and path, or false when the
// host is blank or belongs to neither configured domain.
func (r *Router) Resolve(host, path string) (string, bool) {
	if strings.TrimSpace(host) == "" {
		return "", false
	}

	for _, t := range r.tables {
		if t.domain == "" || !strings.EqualFold(t.domain, host) {
			continue
		}
		return t.resolve(path), true
	}

	return "", false
}
