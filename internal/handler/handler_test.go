package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/consumer-router/internal/handler"
	"github.com/angeloszaimis/consumer-router/internal/metrics"
	"github.com/angeloszaimis/consumer-router/internal/pipeline"
	"github.com/angeloszaimis/consumer-router/internal/reqctx"
	"github.com/angeloszaimis/consumer-router/internal/routing"
)

var _ = Describe("Handler", func() {
	var (
		h         *handler.RoutingHandler
		collector *metrics.Collector
		log       *slog.Logger
		cancel    context.CancelFunc
	)

	serve := func(host, target string) (*httptest.ResponseRecorder, handler.Decision) {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Host = host
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		var decision handler.Decision
		Expect(json.Unmarshal(w.Body.Bytes(), &decision)).To(Succeed())
		return w, decision
	}

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, log)
		collector.Start(ctx)

		router := routing.NewRouter(routing.DefaultConfig(), log)
		h = handler.NewRoutingHandler(log, pipeline.NewChain(log, router), collector)
	})

	AfterEach(func() {
		cancel()
	})

	Describe("ServeHTTP", func() {
		It("should resolve a consumer api request", func() {
			w, decision := serve("local-dev-consumer-web.com", "/consumer-web/api/products/query?param1=value1&param")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get(handler.ServiceIDHeader)).To(Equal(routing.ServiceConsumerWeb))
			Expect(decision.Resolved).To(BeTrue())
			Expect(decision.ServiceID).To(Equal(routing.ServiceConsumerWeb))
			Expect(decision.Path).To(Equal("/consumer-web/api/products/query"))
		})

		It("should ignore the port in the Host header", func() {
			_, decision := serve("admin.local-dev-consumer-web.com:8080", "/consumer-web-admin-other")
			Expect(decision.ServiceID).To(Equal(routing.ServiceConsumerWebAdminOther))
			Expect(decision.Host).To(Equal("admin.local-dev-consumer-web.com"))
		})

		It("should fall back to the static admin service", func() {
			_, decision := serve("admin.local-dev-consumer-web.com", "/unrelated")
			Expect(decision.ServiceID).To(Equal(routing.ServiceConsumerWebAdminStatic))
		})

		Context("with an unknown host", func() {
			It("should answer without a decision", func() {
				w, decision := serve("example.org", "/consumer-web")

				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(w.Header().Get(handler.ServiceIDHeader)).To(BeEmpty())
				Expect(decision.Resolved).To(BeFalse())
				Expect(decision.ServiceID).To(BeEmpty())
			})
		})

		Context("with an empty host", func() {
			It("should answer without a decision", func() {
				_, decision := serve("", "/consumer-web")
				Expect(decision.Resolved).To(BeFalse())
			})
		})

		It("should echo the inbound request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/consumer-web", nil)
			req.Host = "local-dev-consumer-web.com"
			req.Header.Set(reqctx.RequestIDHeader, "req-42")
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			Expect(w.Header().Get(reqctx.RequestIDHeader)).To(Equal("req-42"))
		})

		It("should record metrics", func() {
			serve("local-dev-consumer-web.com", "/no-match")
			serve("example.org", "/")

			Eventually(func() metrics.Snapshot {
				return collector.Snapshot()
			}).Should(And(
				HaveField("TotalRequests", int64(2)),
				HaveField("Unresolved", int64(1)),
				HaveField("Services", HaveKeyWithValue(routing.ServiceConsumerWebStatic, int64(1))),
			))
		})

		It("should work without a metrics collector", func() {
			router := routing.NewRouter(routing.DefaultConfig(), log)
			h = handler.NewRoutingHandler(log, pipeline.NewChain(log, router), nil)

			_, decision := serve("local-dev-consumer-web.com", "/consumer-web")
			Expect(decision.ServiceID).To(Equal(routing.ServiceConsumerWeb))
		})
	})
})
