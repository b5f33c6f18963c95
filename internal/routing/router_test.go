package routing_test

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/consumer-router/internal/pipeline"
	"github.com/angeloszaimis/consumer-router/internal/reqctx"
	"github.com/angeloszaimis/consumer-router/internal/routing"
)

const (
	consumerDomain      = "local-dev-consumer-web.com"
	consumerAdminDomain = "admin.local-dev-consumer-web.com"
)

var _ = Describe("Router", func() {
	var router *routing.Router

	BeforeEach(func() {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		router = routing.NewRouter(routing.Config{
			ConsumerDomain:      consumerDomain,
			ConsumerAdminDomain: consumerAdminDomain,
		}, log)
	})

	Describe("filter metadata", func() {
		It("should be a pre filter", func() {
			Expect(router.Type()).To(Equal(pipeline.Pre))
		})

		It("should run first", func() {
			Expect(router.Order()).To(Equal(0))
		})
	})

	Describe("DefaultConfig", func() {
		It("should use the local development domains", func() {
			cfg := routing.DefaultConfig()
			Expect(cfg.ConsumerDomain).To(Equal(consumerDomain))
			Expect(cfg.ConsumerAdminDomain).To(Equal(consumerAdminDomain))
		})
	})

	Describe("ShouldApply", func() {
		It("should apply to a fresh request", func() {
			ctx := reqctx.New(consumerDomain, "/consumer-web")
			Expect(router.ShouldApply(ctx)).To(BeTrue())
		})

		It("should not apply when a forward target is set", func() {
			ctx := reqctx.New(consumerDomain, "/consumer-web")
			ctx.SetForwardTarget("http://localhost:9000")
			Expect(router.ShouldApply(ctx)).To(BeFalse())
		})

		It("should not apply when a service id is set", func() {
			ctx := reqctx.New(consumerDomain, "/consumer-web")
			ctx.SetServiceID("upstream-choice")
			Expect(router.ShouldApply(ctx)).To(BeFalse())
		})

		It("should not modify the context", func() {
			ctx := reqctx.New(consumerDomain, "/consumer-web")
			router.ShouldApply(ctx)
			Expect(ctx.HasServiceID()).To(BeFalse())
			Expect(ctx.HasForwardTarget()).To(BeFalse())
		})
	})

	Describe("Run", func() {
		DescribeTable("records the service id",
			func(host, path, expected string) {
				ctx := reqctx.New(host, path)
				router.Run(ctx)

				id, ok := ctx.ServiceID()
				Expect(ok).To(BeTrue())
				Expect(id).To(Equal(expected))
			},
			Entry("consumer api path", consumerDomain, "/consumer-web/api/products/query", routing.ServiceConsumerWeb),
			Entry("consumer context root", consumerDomain, "/consumer-web", routing.ServiceConsumerWeb),
			Entry("consumer context root with slash", consumerDomain, "/consumer-web/", routing.ServiceConsumerWeb),
			Entry("consumer context root ignoring case", consumerDomain, "/Consumer-Web", routing.ServiceConsumerWeb),
			Entry("consumer unknown path", consumerDomain, "/no-match", routing.ServiceConsumerWebStatic),
			Entry("consumer lookalike prefix", consumerDomain, "/no-match-for-consumer-web/api/products/query", routing.ServiceConsumerWebStatic),
			Entry("consumer prefix without separator", consumerDomain, "/consumer-webapp", routing.ServiceConsumerWebStatic),
			Entry("consumer root", consumerDomain, "/", routing.ServiceConsumerWebStatic),
			Entry("consumer empty path", consumerDomain, "", routing.ServiceConsumerWebStatic),
			Entry("consumer sub path is case sensitive", consumerDomain, "/CONSUMER-WEB/api", routing.ServiceConsumerWebStatic),
			Entry("consumer host ignoring case", "LOCAL-DEV-Consumer-Web.COM", "/consumer-web", routing.ServiceConsumerWeb),
			Entry("admin api path", consumerAdminDomain, "/consumer-web-admin/api/products/query", routing.ServiceConsumerWebAdmin),
			Entry("admin context root", consumerAdminDomain, "/consumer-web-admin", routing.ServiceConsumerWebAdmin),
			Entry("admin other context root", consumerAdminDomain, "/consumer-web-admin-other", routing.ServiceConsumerWebAdminOther),
			Entry("admin other sub path", consumerAdminDomain, "/consumer-web-admin-other/x", routing.ServiceConsumerWebAdminOther),
			Entry("admin unrelated path", consumerAdminDomain, "/unrelated", routing.ServiceConsumerWebAdminStatic),
			Entry("admin consumer path", consumerAdminDomain, "/consumer-web/api", routing.ServiceConsumerWebAdminStatic),
			Entry("admin lookalike prefix", consumerAdminDomain, "/consumer-web-administrator", routing.ServiceConsumerWebAdminStatic),
			Entry("admin host ignoring case", "Admin.Local-Dev-Consumer-Web.com", "/consumer-web-admin-other", routing.ServiceConsumerWebAdminOther),
		)

		DescribeTable("leaves the context untouched",
			func(host, path string) {
				ctx := reqctx.New(host, path)
				router.Run(ctx)

				_, ok := ctx.ServiceID()
				Expect(ok).To(BeFalse())
			},
			Entry("empty host", "", "/consumer-web/api/products/query"),
			Entry("blank host", "  ", "/consumer-web/api/products/query"),
			Entry("tab host", "\t", "/consumer-web-admin"),
			Entry("unknown host", "host name won't match, expect null", "/consumer-web/api/products/query"),
			Entry("subdomain of consumer domain", "www."+consumerDomain, "/consumer-web"),
			Entry("consumer domain with padding", " "+consumerDomain, "/consumer-web"),
		)

		It("should not read or alter the host and path", func() {
			ctx := reqctx.New(consumerDomain, "/consumer-web/api")
			router.Run(ctx)
			Expect(ctx.Host()).To(Equal(consumerDomain))
			Expect(ctx.Path()).To(Equal("/consumer-web/api"))
		})
	})

	Describe("Resolve", func() {
		It("should report no decision for unknown hosts", func() {
			id, ok := router.Resolve("example.com", "/consumer-web")
			Expect(ok).To(BeFalse())
			Expect(id).To(BeEmpty())
		})

		It("should prefer the consumer domain when both domains are equal", func() {
			same := routing.NewRouter(routing.Config{
				ConsumerDomain:      consumerDomain,
				ConsumerAdminDomain: consumerDomain,
			}, slog.New(slog.NewTextHandler(io.Discard, nil)))

			id, ok := same.Resolve(consumerDomain, "/consumer-web-admin")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(routing.ServiceConsumerWebStatic))
		})

		It("should never match an unset domain", func() {
			partial := routing.NewRouter(routing.Config{
				ConsumerDomain: consumerDomain,
			}, slog.New(slog.NewTextHandler(io.Discard, nil)))

			_, ok := partial.Resolve(consumerAdminDomain, "/consumer-web-admin")
			Expect(ok).To(BeFalse())

			id, ok := partial.Resolve(consumerDomain, "/consumer-web")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(routing.ServiceConsumerWeb))
		})
	})

	Describe("inside a chain", func() {
		It("should defer to an earlier filter that set a forward target", func() {
			chain := pipeline.NewChain(slog.New(slog.NewTextHandler(io.Discard, nil)),
				router,
				&forwardingFilter{target: "http://localhost:9000"},
			)

			ctx := reqctx.New(consumerDomain, "/consumer-web")
			chain.Run(ctx)

			Expect(ctx.ForwardTarget()).To(Equal("http://localhost:9000"))
			Expect(ctx.HasServiceID()).To(BeFalse())
		})
	})
})

// forwardingFilter runs before the router and pins a forward target.
type forwardingFilter struct {
	target string
}

func (f *forwardingFilter) Type() pipeline.FilterType            { return pipeline.Pre }
func (f *forwardingFilter) Order() int                           { return -1 }
func (f *forwardingFilter) ShouldApply(ctx *reqctx.Context) bool { return true }
func (f *forwardingFilter) Run(ctx *reqctx.Context)              { ctx.SetForwardTarget(f.target) }
