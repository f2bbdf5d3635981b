package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const agentsTimeout = 10 * time.Second

// AgentPayload is an answer from the agents service, passed through as is,
// or the built-in payload when the service could not be used.
type AgentPayload struct {
	Body     json.RawMessage
	Fallback bool
}

type InsightsService interface {
	Insights(ctx context.Context) AgentPayload
	Suggestions(ctx context.Context) AgentPayload
}

type insightsService struct {
	baseURL    string
	httpClient *http.Client
}

func NewInsightsService(baseURL string, httpClient *http.Client) InsightsService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: agentsTimeout}
	}
	return &insightsService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (s *insightsService) Insights(ctx context.Context) AgentPayload {
	return s.fetch(ctx, "/insights", fallbackInsights)
}

func (s *insightsService) Suggestions(ctx context.Context) AgentPayload {
	return s.fetch(ctx, "/suggestions", fallbackSuggestions)
}

func (s *insightsService) fetch(ctx context.Context, path string, fallback any) AgentPayload {
	body, err := s.get(ctx, path)
	if err == nil {
		return AgentPayload{Body: body}
	}

	slog.WarnContext(ctx, "agents service unavailable, serving fallback", "path", path, "error", err)
	data, _ := json.Marshal(fallback)
	return AgentPayload{Body: data, Fallback: true}
}

func (s *insightsService) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent service returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("agent service returned invalid JSON")
	}
	return body, nil
}

type insight struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Impact      string         `json:"impact"`
	Category    string         `json:"category"`
	Metrics     map[string]int `json:"metrics"`
	Icon        string         `json:"icon"`
}

type insightStats struct {
	ActiveInsights int    `json:"activeInsights"`
	TimeSaved      string `json:"timeSaved"`
	Efficiency     string `json:"efficiency"`
}

type insightsPayload struct {
	Insights []insight     `json:"insights"`
	Stats    insightStats `json:"stats"`
}

type suggestion struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	Type          string `json:"type"`
	EstimatedTime string `json:"estimatedTime"`
}

type suggestionSummary struct {
	TotalSuggestions int `json:"totalSuggestions"`
	CriticalIssues   int `json:"criticalIssues"`
	ProductivityTips int `json:"productivityTips"`
}

type suggestionsPayload struct {
	Suggestions []suggestion      `json:"suggestions"`
	Summary     suggestionSummary `json:"summary"`
}

var fallbackInsights = insightsPayload{
	Insights: []insight{{
		ID:          1,
		Title:       "GitHub Activity Analysis",
		Description: "Recent commits show active development. Consider reviewing PR #42 for potential optimizations.",
		Impact:      "medium",
		Category:    "Development",
		Metrics:     map[string]int{"commits": 15, "prs": 3},
		Icon:        "Target",
	}},
	Stats: insightStats{ActiveInsights: 1, TimeSaved: "2h", Efficiency: "+5%"},
}

var fallbackSuggestions = suggestionsPayload{
	Suggestions: []suggestion{
		{ID: 1, Title: "Review Open Pull Requests", Description: "Check for PRs that need review or have been waiting too long. Focus on high-priority features.", Priority: "high", Type: "review", EstimatedTime: "15 min"},
		{ID: 2, Title: "Update Dependencies", Description: "Run dependency updates to ensure security patches and latest features are applied.", Priority: "medium", Type: "maintenance", EstimatedTime: "10 min"},
		{ID: 3, Title: "Improve Code Coverage", Description: "Add tests for recently added features to maintain high code quality standards.", Priority: "medium", Type: "quality", EstimatedTime: "30 min"},
		{ID: 4, Title: "Document Recent Changes", Description: "Update README or documentation to reflect recent feature additions or API changes.", Priority: "low", Type: "documentation", EstimatedTime: "20 min"},
	},
	Summary: suggestionSummary{TotalSuggestions: 4, CriticalIssues: 0, ProductivityTips: 4},
}
