package model

import (
	"encoding/json"
	"time"
)

// Provider identifies the external system an activity was imported from.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderSlack  Provider = "slack"
	ProviderGitLab Provider = "gitlab"
	ProviderGmail  Provider = "gmail"
	ProviderTrello Provider = "trello"
	ProviderJira   Provider = "jira"
	ProviderNotion Provider = "notion"
	ProviderSheets Provider = "sheets"
)

// Context type tags. New tags may appear without a schema change.
const (
	ContextGitHubIssue   = "github:issue"
	ContextGitHubPR      = "github:pr"
	ContextGitHubRepo    = "github:repo"
	ContextSlackThread   = "slack:thread"
	ContextSlackChannel  = "slack:channel"
	ContextGitLabIssue   = "gitlab:issue"
	ContextGitLabMR      = "gitlab:mr"
	ContextGitLabProject = "gitlab:project"
)

// ActivityContext clusters related events: the same issue, PR or conversation.
type ActivityContext struct {
	Type  string `json:"context_type"`
	ID    string `json:"context_id"`
	Label string `json:"context_label"`
}

// ActivityEvent is the normalized, immutable record of something that
// happened in a provider. Metadata holds the provider payload byte for byte.
type ActivityEvent struct {
	ID           int64           `json:"id,string"`
	WorkspaceID  string          `json:"workspace_id"`
	Provider     Provider        `json:"provider"`
	Type         string          `json:"type"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	URL          *string         `json:"url"`
	Actor        *string         `json:"actor"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
	ContextType  string          `json:"context_type"`
	ContextID    string          `json:"context_id"`
	ContextLabel string          `json:"context_label"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
}

func (e *ActivityEvent) SetContext(c ActivityContext) {
	e.ContextType = c.Type
	e.ContextID = c.ID
	e.ContextLabel = c.Label
}
