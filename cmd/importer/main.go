// Command syncly-import runs one provider import outside the HTTP server and
// prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sam3690/syncly/common/id"
	"github.com/sam3690/syncly/common/logger"
	"github.com/sam3690/syncly/core/config"
	"github.com/sam3690/syncly/core/db"
	"github.com/sam3690/syncly/internal/metrics"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/service"
	"github.com/sam3690/syncly/internal/service/importer"
	"github.com/sam3690/syncly/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "syncly-import",
		Short:        "Import provider activity into the Syncly activity store",
		SilenceUsage: true,
	}
	cmd.AddCommand(githubCmd(), slackCmd(), gitlabCmd())
	return cmd
}

func githubCmd() *cobra.Command {
	var repo, since string
	cmd := &cobra.Command{
		Use:   "github",
		Short: "Import issues and pull requests updated since a timestamp",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sinceAt, err := parseSince(since)
			if err != nil {
				return err
			}
			return run(cmd.Context(), func(ctx context.Context, services *service.Services) (any, error) {
				return services.GitHubImporter().Import(ctx, importer.GitHubImportParams{Repo: repo, Since: sinceAt})
			})
		},
	}
	cmd.Flags().StringVar(&repo, "repo", "", "Repository as owner/name (default GITHUB_REPO)")
	cmd.Flags().StringVar(&since, "since", "", "RFC 3339 lower bound (default 7 days ago)")
	return cmd
}

func slackCmd() *cobra.Command {
	var (
		channel, oldest string
		limit           int
	)
	cmd := &cobra.Command{
		Use:   "slack",
		Short: "Import channel history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, services *service.Services) (any, error) {
				return services.SlackImporter().Import(ctx, importer.SlackImportParams{
					Channel: channel,
					Oldest:  oldest,
					Limit:   limit,
				})
			})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "Channel id (default SLACK_CHANNEL_ID)")
	cmd.Flags().StringVar(&oldest, "oldest", "", "Slack timestamp lower bound (default 7 days ago)")
	cmd.Flags().IntVar(&limit, "limit", importer.DefaultSlackLimit, "Maximum messages to fetch")
	return cmd
}

func gitlabCmd() *cobra.Command {
	var project, since string
	cmd := &cobra.Command{
		Use:   "gitlab",
		Short: "Import issues and merge requests updated since a timestamp",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sinceAt, err := parseSince(since)
			if err != nil {
				return err
			}
			return run(cmd.Context(), func(ctx context.Context, services *service.Services) (any, error) {
				return services.GitLabImporter().Import(ctx, importer.GitLabImportParams{Project: project, Since: sinceAt})
			})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project path (default GITLAB_PROJECT)")
	cmd.Flags().StringVar(&since, "since", "", "RFC 3339 lower bound (default 7 days ago)")
	return cmd
}

func parseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, importer.ErrInvalidSince
	}
	return t, nil
}

type importFunc func(ctx context.Context, services *service.Services) (any, error)

func run(parent context.Context, fn importFunc) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)

	if err := id.Init(1); err != nil {
		return fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	producer := queue.NewNoopProducer()
	if cfg.Pipeline.Enabled() {
		producer, err = queue.NewRedisProducerFromURL(cfg.Pipeline.RedisURL, cfg.Pipeline.RedisStream, slog.Default())
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
	}
	defer producer.Close()

	importMetrics := metrics.New()
	services := service.NewServices(service.ServicesConfig{
		Stores:   store.NewStores(database.Queries()),
		Config:   cfg,
		Producer: producer,
		Recorder: importMetrics,
	})

	result, err := fn(ctx, services)
	pushMetrics(cfg.Metrics, importMetrics)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// pushMetrics reports the run to the Pushgateway. A failed push is logged and
// does not change the exit status.
func pushMetrics(cfg config.MetricsConfig, reg *metrics.Registry) {
	if !cfg.PushEnabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := reg.Push(ctx, cfg.PushgatewayURL, "syncly_import"); err != nil {
		slog.Warn("metrics push failed", "error", err)
	}
}
