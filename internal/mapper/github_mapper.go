package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sam3690/syncly/internal/model"
)

// GitHubItem is one element of the repository issues listing. That endpoint
// returns issues and pull requests together; PullRequest is set only for PRs.
type GitHubItem struct {
	Number      json.RawMessage    `json:"number"`
	Title       *string            `json:"title"`
	Body        *string            `json:"body"`
	State       string             `json:"state"`
	HTMLURL     *string            `json:"html_url"`
	User        *GitHubUser        `json:"user"`
	PullRequest *GitHubPullRequest `json:"pull_request"`
	CreatedAt   *string            `json:"created_at"`
	UpdatedAt   *string            `json:"updated_at"`

	raw json.RawMessage
}

type GitHubUser struct {
	Login string `json:"login"`
}

type GitHubPullRequest struct {
	URL      string  `json:"url"`
	MergedAt *string `json:"merged_at"`
}

func (i GitHubItem) Provider() model.Provider { return model.ProviderGitHub }

func (i GitHubItem) RawJSON() json.RawMessage { return i.raw }

func (i GitHubItem) IsPullRequest() bool { return i.PullRequest != nil }

func (i GitHubItem) merged() bool {
	return i.PullRequest != nil && i.PullRequest.MergedAt != nil && *i.PullRequest.MergedAt != ""
}

// DecodeGitHubItems decodes an issues listing response body.
func DecodeGitHubItems(body []byte) ([]GitHubItem, error) {
	items, err := decodeEach(body, func(item *GitHubItem, raw json.RawMessage) { item.raw = raw })
	if err != nil {
		return nil, fmt.Errorf("decoding github items: %w", err)
	}
	return items, nil
}

// GitHubEventType classifies an item by kind and state.
func GitHubEventType(item GitHubItem) string {
	closed := item.State == "closed"
	if item.IsPullRequest() {
		switch {
		case closed && item.merged():
			return EventPRMerged
		case closed:
			return EventPRClosed
		default:
			return EventPROpened
		}
	}
	if closed {
		return EventIssueClosed
	}
	return EventIssueOpened
}

// GitHubContext puts every update on one issue or PR in the same bucket;
// items without a number fall back to the repository itself.
func GitHubContext(owner, repo string, item GitHubItem) model.ActivityContext {
	number, ok := numberLiteral(item.Number)
	if !ok {
		full := owner + "/" + repo
		return model.ActivityContext{Type: model.ContextGitHubRepo, ID: full, Label: full}
	}

	contextType := model.ContextGitHubIssue
	if item.IsPullRequest() {
		contextType = model.ContextGitHubPR
	}
	title := ""
	if item.Title != nil {
		title = *item.Title
	}
	return model.ActivityContext{
		Type:  contextType,
		ID:    fmt.Sprintf("%s/%s#%s", owner, repo, number),
		Label: fmt.Sprintf("%s #%s: %s", repo, number, title),
	}
}

type GitHubMapper struct{}

func NewGitHubMapper() *GitHubMapper {
	return &GitHubMapper{}
}

// Map normalizes one issues-listing item. importedAt is used when the item
// carries no usable timestamp.
func (m *GitHubMapper) Map(workspaceID, owner, repo string, item GitHubItem, importedAt time.Time) model.ActivityEvent {
	event := newEvent(workspaceID, item)
	event.Type = GitHubEventType(item)
	event.Title = item.Title
	event.Description = truncatedDescription(item.Body)
	event.URL = optionalPtr(item.HTMLURL)
	if item.User != nil {
		event.Actor = optional(item.User.Login)
	}
	event.OccurredAt = firstTimestamp(importedAt, item.UpdatedAt, item.CreatedAt)
	event.SetContext(GitHubContext(owner, repo, item))
	return event
}
