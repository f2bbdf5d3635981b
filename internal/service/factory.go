package service

import (
	"log/slog"
	"net/http"

	"github.com/sam3690/syncly/common/llm"
	"github.com/sam3690/syncly/core/config"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/service/importer"
	"github.com/sam3690/syncly/internal/store"
)

// ServicesConfig holds the dependencies shared by every service. Producer,
// LLM and Recorder are optional.
type ServicesConfig struct {
	Stores   *store.Stores
	Config   config.Config
	Producer queue.Producer
	LLM      llm.Client
	Recorder ImportRecorder
}

type Services struct {
	stores     *store.Stores
	cfg        config.Config
	producer   queue.Producer
	llm        llm.Client
	recorder   ImportRecorder
	httpClient *http.Client
}

func NewServices(cfg ServicesConfig) *Services {
	producer := cfg.Producer
	if producer == nil {
		producer = queue.NewNoopProducer()
	}
	return &Services{
		stores:     cfg.Stores,
		cfg:        cfg.Config,
		producer:   producer,
		llm:        cfg.LLM,
		recorder:   cfg.Recorder,
		httpClient: http.DefaultClient,
	}
}

func (s *Services) Activities() ActivityService {
	return NewActivityService(s.stores.Activities(), s.cfg.WorkspaceID)
}

func (s *Services) Workflows() WorkflowService {
	return NewWorkflowService(s.stores.Workflows())
}

func (s *Services) Digest() DigestService {
	return NewDigestService(s.stores.Activities(), s.cfg.WorkspaceID, s.cfg.Slack.WebhookURL, s.httpClient, s.llm)
}

func (s *Services) Insights() InsightsService {
	return NewInsightsService(s.cfg.Agents.BaseURL, nil)
}

func (s *Services) GitHubImporter() importer.GitHubImporter {
	client := importer.NewGitHubClient(s.cfg.GitHub.APIURL, s.cfg.GitHub.Token, s.httpClient)
	imp := importer.NewGitHubImporter(client, s.cfg.GitHub.Repo, s.cfg.WorkspaceID, s.stores.Activities(), s.producer, slog.Default())
	if s.recorder != nil {
		return observedGitHubImporter{next: imp, recorder: s.recorder}
	}
	return imp
}

func (s *Services) SlackImporter() importer.SlackImporter {
	var client *importer.SlackClient
	if s.cfg.Slack.BotToken != "" {
		client = importer.NewSlackClient(s.cfg.Slack.APIURL, s.cfg.Slack.BotToken, s.httpClient)
	}
	imp := importer.NewSlackImporter(client, s.cfg.Slack.ChannelID, s.cfg.WorkspaceID, s.stores.Activities(), s.producer, slog.Default())
	if s.recorder != nil {
		return observedSlackImporter{next: imp, recorder: s.recorder}
	}
	return imp
}

func (s *Services) GitLabImporter() importer.GitLabImporter {
	var client *importer.GitLabClient
	if s.cfg.GitLab.Enabled() {
		c, err := importer.NewGitLabClient(s.cfg.GitLab.BaseURL, s.cfg.GitLab.Token, s.httpClient)
		if err != nil {
			slog.Warn("gitlab importer disabled", "error", err)
		} else {
			client = c
		}
	}
	imp := importer.NewGitLabImporter(client, s.cfg.GitLab.Project, s.cfg.WorkspaceID, s.stores.Activities(), s.producer, slog.Default())
	if s.recorder != nil {
		return observedGitLabImporter{next: imp, recorder: s.recorder}
	}
	return imp
}
