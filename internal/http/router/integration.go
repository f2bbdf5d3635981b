package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/handler"
)

func ImportRouter(rg *gin.RouterGroup, h *handler.ImportHandler) {
	rg.GET("/github/import", h.GitHub)
	rg.GET("/slack/import", h.Slack)
	rg.GET("/gitlab/import", h.GitLab)
}

func NotifyRouter(rg *gin.RouterGroup, h *handler.DigestHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/slack/digest", requireAuth, h.SendSlack)
}
