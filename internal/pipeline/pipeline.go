package pipeline

import (
	"log/slog"
	"sort"

	"github.com/angeloszaimis/consumer-router/internal/reqctx"
)

type FilterType int

const (
	Pre FilterType = iota
	Route
	Post
)

func (t FilterType) String() string {
	switch t {
	case Pre:
		return "pre"
	case Route:
		return "route"
	case Post:
		return "post"
	default:
		return "unknown"
	}
}

// Filter is a single step of the chain. Run has no return value; a
// filter communicates only through the request context.
type Filter interface {
	Type() FilterType
	Order() int
	ShouldApply(ctx *reqctx.Context) bool
	Run(ctx *reqctx.Context)
}

type Chain struct {
	logger  *slog.Logger
	filters []Filter
}

// NewChain orders filters by type and then by order. Filters with equal
// type and order keep their registration order.
func NewChain(logger *slog.Logger, filters ...Filter) *Chain {
	ordered := make([]Filter, len(filters))
	copy(ordered, filters)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Type() != ordered[j].Type() {
			return ordered[i].Type() < ordered[j].Type()
		}
		return ordered[i].Order() < ordered[j].Order()
	})

	return &Chain{
		logger:  logger,
		filters: ordered,
	}
}

func (c *Chain) Run(ctx *reqctx.Context) {
	for _, f := range c.filters {
		if !f.ShouldApply(ctx) {
			c.logger.Debug("Filter skipped",
				slog.String("request_id", ctx.RequestID()),
				slog.String("type", f.Type().String()),
				slog.Int("order", f.Order()))
			continue
		}

		f.Run(ctx)
	}
}

func (c *Chain) Filters() []Filter {
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}
