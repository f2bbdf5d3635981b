package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/internal/service"
)

var _ = Describe("InsightsService", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("passes the agent answer through", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/insights":
				_, _ = w.Write([]byte(`{"insights": [], "stats": {"activeInsights": 0}}`))
			case "/suggestions":
				_, _ = w.Write([]byte(`{"suggestions": [{"id": 9}]}`))
			}
		}))
		DeferCleanup(server.Close)
		svc := service.NewInsightsService(server.URL, server.Client())

		insights := svc.Insights(ctx)
		Expect(insights.Fallback).To(BeFalse())
		Expect(insights.Body).To(MatchJSON(`{"insights": [], "stats": {"activeInsights": 0}}`))

		suggestions := svc.Suggestions(ctx)
		Expect(suggestions.Fallback).To(BeFalse())
		Expect(suggestions.Body).To(MatchJSON(`{"suggestions": [{"id": 9}]}`))
	})

	It("serves the built-in insights when the agent errors", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		DeferCleanup(server.Close)
		svc := service.NewInsightsService(server.URL, server.Client())

		payload := svc.Insights(ctx)

		Expect(payload.Fallback).To(BeTrue())
		var body map[string]any
		Expect(json.Unmarshal(payload.Body, &body)).To(Succeed())
		Expect(body["insights"]).To(HaveLen(1))
		Expect(body["stats"]).To(HaveKeyWithValue("timeSaved", "2h"))
	})

	It("serves the built-in suggestions when the agent is unreachable", func() {
		svc := service.NewInsightsService("http://127.0.0.1:1", nil)

		payload := svc.Suggestions(ctx)

		Expect(payload.Fallback).To(BeTrue())
		var body struct {
			Suggestions []map[string]any `json:"suggestions"`
			Summary     map[string]int   `json:"summary"`
		}
		Expect(json.Unmarshal(payload.Body, &body)).To(Succeed())
		Expect(body.Suggestions).To(HaveLen(4))
		Expect(body.Suggestions[0]).To(HaveKeyWithValue("estimatedTime", "15 min"))
		Expect(body.Summary).To(HaveKeyWithValue("totalSuggestions", 4))
	})

	It("treats invalid JSON as unavailable", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		DeferCleanup(server.Close)
		svc := service.NewInsightsService(server.URL, server.Client())
		Expect(svc.Insights(ctx).Fallback).To(BeTrue())
	})
})
