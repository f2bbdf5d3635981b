package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/handler"
)

// WorkflowRouter sets up workflow routes
// - listing is public
// - writes require a verified bearer token
func WorkflowRouter(rg *gin.RouterGroup, h *handler.WorkflowHandler, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)

	write := rg.Group("")
	write.Use(requireAuth)
	{
		write.POST("", h.Create)
		write.PATCH("/:id", h.Update)
		write.DELETE("/:id", h.Delete)
	}
}
