package service

import (
	"encoding/json"
	"time"

	"github.com/sam3690/syncly/internal/model"
)

// Demo content served by list endpoints when the store is unavailable and
// fallback data is enabled. Timestamps are relative to now.

func FallbackWorkflows(now time.Time) []model.Workflow {
	ago := func(d time.Duration) time.Time { return now.Add(-d).UTC() }
	integration := func(id string, platform model.Provider, config string) []model.WorkflowIntegration {
		return []model.WorkflowIntegration{{
			ID:        id,
			Platform:  platform,
			Config:    json.RawMessage(config),
			Status:    "active",
			CreatedAt: now.UTC(),
		}}
	}
	category := func(s string) *string { return &s }
	const day = 24 * time.Hour

	return []model.Workflow{
		{
			ID:               1,
			Name:             "User Authentication System",
			Description:      "Implement OAuth2 authentication with Auth0 integration",
			Status:           model.WorkflowStatusActive,
			Progress:         75,
			Tasks:            12,
			Members:          3,
			Category:         category("Security"),
			LastUpdatedLabel: "2 hours ago",
			CreatedAt:        ago(7 * day),
			UpdatedAt:        ago(2 * time.Hour),
			Integrations:     integration("github-1", model.ProviderGitHub, `{"repo":"company/auth-service"}`),
		},
		{
			ID:               2,
			Name:             "API Documentation Update",
			Description:      "Update API docs for v2.1 release with new endpoints",
			Status:           model.WorkflowStatusCompleted,
			Progress:         100,
			Tasks:            8,
			Members:          2,
			Category:         category("Documentation"),
			LastUpdatedLabel: "1 day ago",
			CreatedAt:        ago(14 * day),
			UpdatedAt:        ago(day),
			Integrations:     integration("jira-1", model.ProviderJira, `{"project_key":"DOCS","domain":"company.atlassian.net"}`),
		},
		{
			ID:               3,
			Name:             "Mobile App Performance",
			Description:      "Optimize mobile app performance and reduce load times",
			Status:           model.WorkflowStatusPaused,
			Progress:         45,
			Tasks:            15,
			Members:          4,
			Category:         category("Performance"),
			LastUpdatedLabel: "5 days ago",
			CreatedAt:        ago(10 * day),
			UpdatedAt:        ago(5 * day),
			Integrations:     integration("slack-1", model.ProviderSlack, `{"channel":"#mobile-dev"}`),
		},
	}
}

func FallbackActivities(workspaceID string, now time.Time) []model.ActivityEvent {
	str := func(s string) *string { return &s }
	event := func(id int64, provider model.Provider, typ, title, description, url, actor string, hoursAgo int, metadata string, c model.ActivityContext) model.ActivityEvent {
		e := model.ActivityEvent{
			ID:          id,
			WorkspaceID: workspaceID,
			Provider:    provider,
			Type:        typ,
			Title:       str(title),
			Description: str(description),
			URL:         str(url),
			Actor:       str(actor),
			Metadata:    json.RawMessage(metadata),
			OccurredAt:  now.Add(-time.Duration(hoursAgo) * time.Hour).UTC(),
		}
		e.SetContext(c)
		return e
	}

	return []model.ActivityEvent{
		event(1, model.ProviderGitHub, "pr_opened", "Add user authentication system",
			"Implement OAuth2 authentication with Auth0 integration",
			"https://github.com/example/repo/pull/42", "john-doe", 2, `{"number":42,"state":"open"}`,
			model.ActivityContext{Type: model.ContextGitHubPR, ID: "example/repo#42", Label: "repo #42: Add user authentication system"}),
		event(2, model.ProviderGitHub, "issue_closed", "Fix responsive design on mobile",
			"Mobile layout breaks on screens smaller than 320px",
			"https://github.com/example/repo/issues/38", "jane-smith", 4, `{"number":38,"state":"closed"}`,
			model.ActivityContext{Type: model.ContextGitHubIssue, ID: "example/repo#38", Label: "repo #38: Fix responsive design on mobile"}),
		event(3, model.ProviderSlack, "message", "Team standup completed",
			"Daily standup finished with 5 participants",
			"#general", "team-lead", 6, `{"channel":"general"}`,
			model.ActivityContext{Type: model.ContextSlackChannel, ID: "general", Label: "#general"}),
		event(4, model.ProviderTrello, "card_moved", "Database schema design",
			"Moved from 'In Progress' to 'Review'",
			"https://trello.com/c/example", "dev-team", 8, `{"board":"Project Board","list":"Review"}`,
			model.ActivityContext{Type: "trello:card", ID: "example", Label: "Database schema design"}),
		event(5, model.ProviderJira, "issue_updated", "API documentation update",
			"Updated API docs for v2.1 release",
			"https://company.atlassian.net/browse/PROJ-123", "api-team", 12, `{"key":"PROJ-123","status":"Done"}`,
			model.ActivityContext{Type: "jira:issue", ID: "PROJ-123", Label: "PROJ-123: API documentation update"}),
	}
}
