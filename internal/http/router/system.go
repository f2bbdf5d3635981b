package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/handler"
)

func SystemRouter(router *gin.Engine, h *handler.SystemHandler, requireAuth gin.HandlerFunc) {
	router.GET("/", h.Index)
	router.GET("/health", h.Health)
	router.GET("/secure/ping", requireAuth, h.Ping)
}
