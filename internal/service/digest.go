package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sam3690/syncly/common/llm"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/store"
)

const (
	DigestSize           = 10
	defaultDigestHeading = "*Syncly — Latest Activity*"
	emptyDigestText      = "No recent activity."
)

// WebhookError is a non-2xx answer from the Slack incoming webhook.
type WebhookError struct {
	Status int
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("Slack %d", e.Status)
}

type DigestResult struct {
	OK   bool `json:"ok"`
	Sent int  `json:"sent"`
}

type DigestService interface {
	Send(ctx context.Context) (*DigestResult, error)
}

type digestService struct {
	activities  store.ActivityStore
	workspaceID string
	webhookURL  string
	httpClient  *http.Client
	llm         llm.Client
}

// NewDigestService builds the digest sender. llmClient may be nil, in which
// case the fixed heading is used.
func NewDigestService(activities store.ActivityStore, workspaceID, webhookURL string, httpClient *http.Client, llmClient llm.Client) DigestService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &digestService{
		activities:  activities,
		workspaceID: workspaceID,
		webhookURL:  webhookURL,
		httpClient:  httpClient,
		llm:         llmClient,
	}
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type string    `json:"type"`
	Text slackText `json:"text"`
}

type slackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

func (s *digestService) Send(ctx context.Context) (*DigestResult, error) {
	if s.webhookURL == "" {
		return nil, ErrWebhookNotConfigured
	}

	events, err := s.activities.ListByWorkspace(ctx, s.workspaceID, DigestSize)
	if err != nil {
		return nil, fmt.Errorf("listing digest activities: %w", err)
	}

	body := DigestLines(events)
	if body == "" {
		body = emptyDigestText
	}
	payload := slackWebhookPayload{
		Text: "Syncly Digest",
		Blocks: []slackBlock{
			{Type: "section", Text: slackText{Type: "mrkdwn", Text: s.heading(ctx, events)}},
			{Type: "section", Text: slackText{Type: "mrkdwn", Text: body}},
		},
	}

	if err := s.post(ctx, payload); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "slack digest sent", "sent", len(events))
	return &DigestResult{OK: true, Sent: len(events)}, nil
}

func (s *digestService) post(ctx context.Context, payload slackWebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding digest: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting digest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &WebhookError{Status: resp.StatusCode}
	}
	return nil
}

// DigestLines renders one mrkdwn bullet per event.
func DigestLines(events []model.ActivityEvent) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		title := "(no title)"
		if e.Title != nil && *e.Title != "" {
			title = *e.Title
		}
		actor := "unknown"
		if e.Actor != nil && *e.Actor != "" {
			actor = *e.Actor
		}
		lines = append(lines, fmt.Sprintf("• *%s*: %s — _%s_", e.Type, title, actor))
	}
	return strings.Join(lines, "\n")
}

type digestHeadline struct {
	Headline string `json:"headline" jsonschema:"required,description=One short sentence summarizing the activity"`
}

const headlineSystemPrompt = `You write the heading of a team activity digest posted to Slack.
Answer with one short sentence, no more than 12 words, in Slack mrkdwn bold (wrapped in *).`

// heading asks the model for a one-line summary. Any failure falls back to
// the fixed heading.
func (s *digestService) heading(ctx context.Context, events []model.ActivityEvent) string {
	if s.llm == nil || len(events) == 0 {
		return defaultDigestHeading
	}

	var out digestHeadline
	_, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: headlineSystemPrompt,
		UserPrompt:   DigestLines(events),
		SchemaName:   "digest_headline",
		Schema:       llm.GenerateSchema[digestHeadline](),
		MaxTokens:    60,
		Temperature:  llm.Temp(0.2),
	}, &out)
	if err != nil || strings.TrimSpace(out.Headline) == "" {
		if err != nil {
			slog.WarnContext(ctx, "digest headline unavailable", "error", err)
		}
		return defaultDigestHeading
	}
	return strings.TrimSpace(out.Headline)
}
