package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/handler"
	"github.com/sam3690/syncly/internal/http/middleware"
	"github.com/sam3690/syncly/internal/service"
)

type RouterConfig struct {
	WorkspaceID       string
	ServeFallbackData bool
	Verifier          middleware.TokenVerifier
	Metrics           http.Handler
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	requireAuth := middleware.RequireAuth(cfg.Verifier)
	fallback := handler.Fallback{Enabled: cfg.ServeFallbackData, WorkspaceID: cfg.WorkspaceID}

	systemHandler := handler.NewSystemHandler()
	SystemRouter(router, systemHandler, requireAuth)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	importHandler := handler.NewImportHandler(services.GitHubImporter(), services.SlackImporter(), services.GitLabImporter())
	ImportRouter(router.Group("/integrations"), importHandler)

	digestHandler := handler.NewDigestHandler(services.Digest())
	NotifyRouter(router.Group("/notify"), digestHandler, requireAuth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", systemHandler.Info)

		workflowHandler := handler.NewWorkflowHandler(services.Workflows(), fallback)
		WorkflowRouter(v1.Group("/workflows"), workflowHandler, requireAuth)

		activityHandler := handler.NewActivityHandler(services.Activities(), fallback)
		ActivityRouter(v1.Group("/activities"), activityHandler)

		insightsHandler := handler.NewInsightsHandler(services.Insights())
		InsightsRouter(v1.Group("/ai"), insightsHandler)
	}
}
