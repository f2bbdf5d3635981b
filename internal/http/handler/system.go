package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/middleware"
)

const (
	apiName        = "Syncly API"
	apiVersion     = "1.0.0"
	apiDescription = "Unified workflow and activity management platform"
	serviceName    = "syncly-backend"
)

type SystemHandler struct {
	now func() time.Time
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
}

func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        apiName,
		"version":     apiVersion,
		"description": apiDescription,
		"endpoints": gin.H{
			"health":     "/health",
			"info":       "/api/v1/info",
			"workflows":  "/api/v1/workflows",
			"activities": "/api/v1/activities",
			"ai": gin.H{
				"insights":    "/api/v1/ai/insights",
				"suggestions": "/api/v1/ai/suggestions",
			},
		},
		"timestamp": h.now().UTC(),
	})
}

func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":      apiName,
		"version":   apiVersion,
		"timestamp": h.now().UTC(),
	})
}

// Ping echoes the verified caller. Must run behind RequireAuth.
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "sub": middleware.GetSubject(c.Request.Context())})
}
