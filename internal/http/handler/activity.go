package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/feed"
	"github.com/sam3690/syncly/internal/http/dto"
	"github.com/sam3690/syncly/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
	fallback        Fallback
}

func NewActivityHandler(activityService service.ActivityService, fallback Fallback) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, fallback: fallback}
}

func (h *ActivityHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	events, err := h.activityService.List(ctx)
	if err != nil {
		if !h.fallback.Enabled {
			slog.ErrorContext(ctx, "failed to list activities", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
			return
		}
		slog.WarnContext(ctx, "activity store unavailable, serving fallback", "error", err)
		c.JSON(http.StatusOK, dto.NewActivityListResponse(h.fallback.activities(), true))
		return
	}

	c.JSON(http.StatusOK, dto.NewActivityListResponse(events, false))
}

func (h *ActivityHandler) Grouped(c *gin.Context) {
	ctx := c.Request.Context()

	groups, err := h.activityService.Grouped(ctx)
	if err != nil {
		if !h.fallback.Enabled {
			slog.ErrorContext(ctx, "failed to group activities", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activities"})
			return
		}
		slog.WarnContext(ctx, "activity store unavailable, serving fallback", "error", err)
		c.JSON(http.StatusOK, dto.NewActivityGroupsResponse(feed.GroupByContext(h.fallback.activities()), true))
		return
	}

	c.JSON(http.StatusOK, dto.NewActivityGroupsResponse(groups, false))
}
