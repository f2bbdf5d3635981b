package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sam3690/syncly/common/id"
	"github.com/sam3690/syncly/common/llm"
	"github.com/sam3690/syncly/common/logger"
	"github.com/sam3690/syncly/common/otel"
	"github.com/sam3690/syncly/core/config"
	"github.com/sam3690/syncly/core/db"
	"github.com/sam3690/syncly/internal/http/middleware"
	httprouter "github.com/sam3690/syncly/internal/http/router"
	"github.com/sam3690/syncly/internal/metrics"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/service"
	"github.com/sam3690/syncly/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "syncly starting", "env", cfg.Env, "workspace_id", cfg.WorkspaceID)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	eventProducer := queue.NewNoopProducer()
	if cfg.Pipeline.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)
		eventProducer = queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default())
	}
	defer eventProducer.Close()

	var llmClient llm.Client
	if cfg.OpenAI.Enabled() {
		llmClient, err = llm.New(llm.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create llm client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "llm digest headlines enabled", "model", llmClient.Model())
	}

	verifier, err := middleware.NewAuth0Verifier(ctx, cfg.Auth0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize auth0 verifier", "error", err)
		os.Exit(1)
	}
	if !cfg.Auth0.Enabled() {
		slog.WarnContext(ctx, "auth0 not configured, protected routes will reject every request")
	}

	importMetrics := metrics.New()
	stores := store.NewStores(database.Queries())
	services := service.NewServices(service.ServicesConfig{
		Stores:   stores,
		Config:   cfg,
		Producer: eventProducer,
		LLM:      llmClient,
		Recorder: importMetrics,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, verifier, importMetrics)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, verifier middleware.TokenVerifier, importMetrics *metrics.Registry) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		WorkspaceID:       cfg.WorkspaceID,
		ServeFallbackData: cfg.ServeFallbackData,
		Verifier:          verifier,
		Metrics:           importMetrics.Handler(),
	})

	return router
}

const banner = `
███████╗██╗   ██╗███╗   ██╗ ██████╗██╗  ██╗   ██╗
██╔════╝╚██╗ ██╔╝████╗  ██║██╔════╝██║  ╚██╗ ██╔╝
███████╗ ╚████╔╝ ██╔██╗ ██║██║     ██║   ╚████╔╝ 
╚════██║  ╚██╔╝  ██║╚██╗██║██║     ██║    ╚██╔╝  
███████║   ██║   ██║ ╚████║╚██████╗███████╗██║   
╚══════╝   ╚═╝   ╚═╝  ╚═══╝ ╚═════╝╚══════╝╚═╝   
`
