package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/service"
)

// InsightsHandler relays the agents service. Bodies are passed through
// untouched; the service swaps in fixed payloads when the agents are down.
type InsightsHandler struct {
	insightsService service.InsightsService
}

func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

func (h *InsightsHandler) Insights(c *gin.Context) {
	writePayload(c, h.insightsService.Insights(c.Request.Context()))
}

func (h *InsightsHandler) Suggestions(c *gin.Context) {
	writePayload(c, h.insightsService.Suggestions(c.Request.Context()))
}

func writePayload(c *gin.Context, payload service.AgentPayload) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload.Body)
}
