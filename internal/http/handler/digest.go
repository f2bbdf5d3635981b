package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/service"
)

type DigestHandler struct {
	digestService service.DigestService
}

func NewDigestHandler(digestService service.DigestService) *DigestHandler {
	return &DigestHandler{digestService: digestService}
}

func (h *DigestHandler) SendSlack(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.digestService.Send(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send slack digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
