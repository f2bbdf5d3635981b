package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/internal/http/handler"
	"github.com/sam3690/syncly/internal/http/middleware"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/service"
	"github.com/sam3690/syncly/internal/store"
)

var _ = Describe("WorkflowHandler", func() {
	var (
		router   *gin.Engine
		svc      *mockWorkflowService
		fallback handler.Fallback
		now      time.Time
	)

	setup := func() {
		router = gin.New()
		h := handler.NewWorkflowHandler(svc, fallback)
		auth := middleware.RequireAuth(staticVerifier{token: "good", subject: "auth0|u1"})

		router.GET("/api/v1/workflows", h.List)
		router.POST("/api/v1/workflows", auth, h.Create)
		router.PATCH("/api/v1/workflows/:id", auth, h.Update)
		router.DELETE("/api/v1/workflows/:id", auth, h.Delete)
	}

	jsonRequest := func(method, path string, body any) *http.Request {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(method, path, bytes.NewBuffer(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer good")
		return req
	}

	BeforeEach(func() {
		now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		svc = &mockWorkflowService{}
		fallback = handler.Fallback{WorkspaceID: "demo", Now: func() time.Time { return now }}
		setup()
	})

	Describe("List", func() {
		It("returns items with a count", func() {
			svc.listFn = func(context.Context) ([]model.Workflow, error) {
				return []model.Workflow{{ID: 7, Name: "Launch"}, {ID: 8, Name: "Docs"}}, nil
			}

			w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Items []map[string]any `json:"items"`
				Count int              `json:"count"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Count).To(Equal(2))
			Expect(resp.Items[0]["id"]).To(Equal("7"))
			Expect(resp.Items[0]).NotTo(HaveKey("workflow_integrations"))
			Expect(w.Body.String()).NotTo(ContainSubstring(`"fallback"`))
		})

		It("returns an empty array rather than null", func() {
			w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil))
			Expect(w.Body.String()).To(MatchJSON(`{"items":[],"count":0}`))
		})

		It("fails with 500 when the store fails and fallback is off", func() {
			svc.listFn = func(context.Context) ([]model.Workflow, error) { return nil, errors.New("db down") }

			w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"failed to list workflows"}`))
		})

		It("serves demo workflows flagged as fallback when enabled", func() {
			fallback.Enabled = true
			setup()
			svc.listFn = func(context.Context) ([]model.Workflow, error) { return nil, errors.New("db down") }

			w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Items    []model.Workflow `json:"items"`
				Count    int              `json:"count"`
				Fallback bool             `json:"fallback"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Fallback).To(BeTrue())
			Expect(resp.Count).To(Equal(len(service.FallbackWorkflows(now))))
			Expect(resp.Items[0].Integrations).NotTo(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("creates a workflow owned by the token subject", func() {
			var got service.CreateWorkflowParams
			svc.createFn = func(_ context.Context, params service.CreateWorkflowParams) (*model.Workflow, error) {
				got = params
				return &model.Workflow{ID: 99, Name: params.Name, Status: model.WorkflowStatusActive}, nil
			}

			w := serve(router, jsonRequest(http.MethodPost, "/api/v1/workflows", map[string]any{
				"name":             "Q3 launch",
				"category":         "Marketing",
				"progress":         10,
				"lastUpdatedLabel": "2 hours ago",
			}))

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.Name).To(Equal("Q3 launch"))
			Expect(got.Category).To(Equal("Marketing"))
			Expect(*got.Progress).To(Equal(int32(10)))
			Expect(got.Tasks).To(BeNil())
			Expect(got.LastUpdatedLabel).To(Equal("2 hours ago"))
			Expect(got.CreatedBy).To(Equal("auth0|u1"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("99"))
		})

		It("returns 400 when the name is missing", func() {
			svc.createFn = func(context.Context, service.CreateWorkflowParams) (*model.Workflow, error) {
				return nil, service.ErrNameRequired
			}

			w := serve(router, jsonRequest(http.MethodPost, "/api/v1/workflows", map[string]any{"description": "x"}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"name is required"}`))
		})

		It("rejects an unknown status", func() {
			w := serve(router, jsonRequest(http.MethodPost, "/api/v1/workflows", map[string]any{"name": "x", "status": "archived"}))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("requires a bearer token", func() {
			req := jsonRequest(http.MethodPost, "/api/v1/workflows", map[string]any{"name": "x"})
			req.Header.Del("Authorization")

			w := serve(router, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 500 on store failure", func() {
			svc.createFn = func(context.Context, service.CreateWorkflowParams) (*model.Workflow, error) {
				return nil, errors.New("insert failed")
			}

			w := serve(router, jsonRequest(http.MethodPost, "/api/v1/workflows", map[string]any{"name": "x"}))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Update", func() {
		It("passes only the provided fields", func() {
			var gotID int64
			var got model.WorkflowPatch
			svc.updateFn = func(_ context.Context, id int64, patch model.WorkflowPatch) (*model.Workflow, error) {
				gotID, got = id, patch
				return &model.Workflow{ID: id, Progress: 55, Status: model.WorkflowStatusPaused}, nil
			}

			w := serve(router, jsonRequest(http.MethodPatch, "/api/v1/workflows/12", map[string]any{
				"progress": 55,
				"status":   "paused",
			}))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotID).To(Equal(int64(12)))
			Expect(*got.Progress).To(Equal(int32(55)))
			Expect(*got.Status).To(Equal(model.WorkflowStatusPaused))
			Expect(got.Name).To(BeNil())
			Expect(got.LastUpdatedLabel).To(BeNil())
		})

		It("returns 404 for a missing workflow", func() {
			svc.updateFn = func(context.Context, int64, model.WorkflowPatch) (*model.Workflow, error) {
				return nil, fmt.Errorf("updating workflow: %w", store.ErrNotFound)
			}

			w := serve(router, jsonRequest(http.MethodPatch, "/api/v1/workflows/12", map[string]any{"name": "y"}))

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"not found"}`))
		})

		It("rejects a non-numeric id", func() {
			w := serve(router, jsonRequest(http.MethodPatch, "/api/v1/workflows/abc", map[string]any{"name": "y"}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"invalid workflow id"}`))
		})
	})

	Describe("Delete", func() {
		It("returns 204", func() {
			var gotID int64
			svc.deleteFn = func(_ context.Context, id int64) error {
				gotID = id
				return nil
			}

			w := serve(router, jsonRequest(http.MethodDelete, "/api/v1/workflows/5", nil))

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Body.Len()).To(BeZero())
			Expect(gotID).To(Equal(int64(5)))
		})

		It("returns 500 on store failure", func() {
			svc.deleteFn = func(context.Context, int64) error { return errors.New("boom") }

			w := serve(router, jsonRequest(http.MethodDelete, "/api/v1/workflows/5", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
