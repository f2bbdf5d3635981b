package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/handler"
)

func ActivityRouter(rg *gin.RouterGroup, h *handler.ActivityHandler) {
	rg.GET("", h.List)
	rg.GET("/grouped", h.Grouped)
}

func InsightsRouter(rg *gin.RouterGroup, h *handler.InsightsHandler) {
	rg.GET("/insights", h.Insights)
	rg.GET("/suggestions", h.Suggestions)
}
