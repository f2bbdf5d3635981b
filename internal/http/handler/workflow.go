package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/dto"
	"github.com/sam3690/syncly/internal/http/middleware"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/service"
	"github.com/sam3690/syncly/internal/store"
)

type WorkflowHandler struct {
	workflowService service.WorkflowService
	fallback        Fallback
}

func NewWorkflowHandler(workflowService service.WorkflowService, fallback Fallback) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService, fallback: fallback}
}

func (h *WorkflowHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	workflows, err := h.workflowService.List(ctx)
	if err != nil {
		if !h.fallback.Enabled {
			slog.ErrorContext(ctx, "failed to list workflows", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list workflows"})
			return
		}
		slog.WarnContext(ctx, "workflow store unavailable, serving fallback", "error", err)
		c.JSON(http.StatusOK, dto.NewWorkflowListResponse(h.fallback.workflows(), true))
		return
	}

	c.JSON(http.StatusOK, dto.NewWorkflowListResponse(workflows, false))
}

func (h *WorkflowHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.CreateWorkflowParams{
		Name:             req.Name,
		Description:      req.Description,
		Status:           model.WorkflowStatus(req.Status),
		Progress:         req.Progress,
		Tasks:            req.Tasks,
		Members:          req.Members,
		LastUpdatedLabel: req.LastUpdatedLabel,
		CreatedBy:        middleware.GetSubject(ctx),
	}
	if req.Category != nil {
		params.Category = *req.Category
	}

	workflow, err := h.workflowService.Create(ctx, params)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to create workflow", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create workflow"})
		return
	}

	c.JSON(http.StatusCreated, workflow)
}

func (h *WorkflowHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	workflowID, ok := parseWorkflowID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workflow, err := h.workflowService.Update(ctx, workflowID, req.ToPatch())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update workflow", "error", err, "workflow_id", workflowID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update workflow"})
		return
	}

	c.JSON(http.StatusOK, workflow)
}

func (h *WorkflowHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	workflowID, ok := parseWorkflowID(c)
	if !ok {
		return
	}

	if err := h.workflowService.Delete(ctx, workflowID); err != nil {
		slog.ErrorContext(ctx, "failed to delete workflow", "error", err, "workflow_id", workflowID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete workflow"})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseWorkflowID(c *gin.Context) (int64, bool) {
	workflowID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workflow id"})
		return 0, false
	}
	return workflowID, true
}
