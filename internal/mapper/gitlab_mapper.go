package mapper

import (
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/sam3690/syncly/internal/model"
)

type GitLabAuthor struct {
	Username string `json:"username"`
}

// GitLabIssue is one element of the project issues listing.
type GitLabIssue struct {
	IID         json.RawMessage `json:"iid"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	State       string          `json:"state"`
	WebURL      *string         `json:"web_url"`
	Author      *GitLabAuthor   `json:"author"`
	CreatedAt   *string         `json:"created_at"`
	UpdatedAt   *string         `json:"updated_at"`

	raw json.RawMessage
}

func (i GitLabIssue) Provider() model.Provider { return model.ProviderGitLab }

func (i GitLabIssue) RawJSON() json.RawMessage { return i.raw }

// GitLabMergeRequest is one element of the project merge requests listing.
type GitLabMergeRequest struct {
	GitLabIssue
	MergedAt *string `json:"merged_at"`
}

func DecodeGitLabIssues(raws []json.RawMessage) ([]GitLabIssue, error) {
	items, err := decodeRaw(raws, func(item *GitLabIssue, raw json.RawMessage) { item.raw = raw })
	if err != nil {
		return nil, fmt.Errorf("decoding gitlab issues: %w", err)
	}
	return items, nil
}

func DecodeGitLabMergeRequests(raws []json.RawMessage) ([]GitLabMergeRequest, error) {
	items, err := decodeRaw(raws, func(item *GitLabMergeRequest, raw json.RawMessage) { item.raw = raw })
	if err != nil {
		return nil, fmt.Errorf("decoding gitlab merge requests: %w", err)
	}
	return items, nil
}

func GitLabIssueEventType(issue GitLabIssue) string {
	if issue.State == "closed" {
		return EventIssueClosed
	}
	return EventIssueOpened
}

func GitLabMergeRequestEventType(mr GitLabMergeRequest) string {
	switch {
	case mr.State == "merged" || (mr.MergedAt != nil && *mr.MergedAt != ""):
		return EventMRMerged
	case mr.State == "closed":
		return EventMRClosed
	default:
		return EventMROpened
	}
}

// GitLabContext uses GitLab's own reference syntax: project#iid for issues,
// project!iid for merge requests.
func GitLabContext(projectPath string, item GitLabIssue, isMergeRequest bool) model.ActivityContext {
	iid, ok := numberLiteral(item.IID)
	if !ok {
		return model.ActivityContext{Type: model.ContextGitLabProject, ID: projectPath, Label: projectPath}
	}

	contextType, sigil := model.ContextGitLabIssue, "#"
	if isMergeRequest {
		contextType, sigil = model.ContextGitLabMR, "!"
	}
	title := ""
	if item.Title != nil {
		title = *item.Title
	}
	return model.ActivityContext{
		Type:  contextType,
		ID:    projectPath + sigil + iid,
		Label: fmt.Sprintf("%s %s%s: %s", path.Base(projectPath), sigil, iid, title),
	}
}

type GitLabMapper struct{}

func NewGitLabMapper() *GitLabMapper {
	return &GitLabMapper{}
}

func (m *GitLabMapper) MapIssue(workspaceID, projectPath string, issue GitLabIssue, importedAt time.Time) model.ActivityEvent {
	event := m.base(workspaceID, issue, importedAt)
	event.Type = GitLabIssueEventType(issue)
	event.SetContext(GitLabContext(projectPath, issue, false))
	return event
}

func (m *GitLabMapper) MapMergeRequest(workspaceID, projectPath string, mr GitLabMergeRequest, importedAt time.Time) model.ActivityEvent {
	event := m.base(workspaceID, mr.GitLabIssue, importedAt)
	event.Type = GitLabMergeRequestEventType(mr)
	event.SetContext(GitLabContext(projectPath, mr.GitLabIssue, true))
	return event
}

func (m *GitLabMapper) base(workspaceID string, item GitLabIssue, importedAt time.Time) model.ActivityEvent {
	event := newEvent(workspaceID, item)
	event.Title = item.Title
	event.Description = truncatedDescription(item.Description)
	event.URL = optionalPtr(item.WebURL)
	if item.Author != nil {
		event.Actor = optional(item.Author.Username)
	}
	event.OccurredAt = firstTimestamp(importedAt, item.UpdatedAt, item.CreatedAt)
	return event
}
