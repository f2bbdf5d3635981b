package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sam3690/syncly/common/logger"
	"github.com/sam3690/syncly/internal/mapper"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/store"
)

type gitLabListOptions struct {
	Scope        string     `url:"scope,omitempty"`
	UpdatedAfter *time.Time `url:"updated_after,omitempty"`
	OrderBy      string     `url:"order_by,omitempty"`
	PerPage      int        `url:"per_page,omitempty"`
}

// GitLabClient lists project issues and merge requests. Items are decoded
// as raw JSON so metadata keeps every field GitLab returned.
type GitLabClient struct {
	client *gitlab.Client
}

// NewGitLabClient targets gitlab.com when baseURL is empty, otherwise the
// self-managed instance at baseURL.
func NewGitLabClient(baseURL, token string, httpClient *http.Client) (*GitLabClient, error) {
	opts := []gitlab.ClientOptionFunc{gitlab.WithoutRetries()}
	if httpClient != nil {
		opts = append(opts, gitlab.WithHTTPClient(httpClient))
	}
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/api/v4"))
	}
	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return &GitLabClient{client: client}, nil
}

func (c *GitLabClient) list(ctx context.Context, project, resource string, since time.Time) ([]json.RawMessage, error) {
	path := fmt.Sprintf("projects/%s/%s", gitlab.PathEscape(project), resource)
	opts := gitLabListOptions{
		Scope:        "all",
		UpdatedAfter: &since,
		OrderBy:      "updated_at",
		PerPage:      pageSize,
	}

	req, err := c.client.NewRequest(http.MethodGet, path, &opts, []gitlab.RequestOptionFunc{gitlab.WithContext(ctx)})
	if err != nil {
		return nil, fmt.Errorf("building gitlab request: %w", err)
	}

	var raws []json.RawMessage
	if _, err := c.client.Do(req, &raws); err != nil {
		var errResp *gitlab.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil {
			status := errResp.Response.StatusCode
			return nil, upstreamHTTPError(model.ProviderGitLab, status, "GitLab HTTP %d %s", status, resource)
		}
		return nil, fmt.Errorf("calling gitlab %s: %w", resource, err)
	}
	return raws, nil
}

func (c *GitLabClient) ListIssues(ctx context.Context, project string, since time.Time) ([]mapper.GitLabIssue, error) {
	raws, err := c.list(ctx, project, "issues", since)
	if err != nil {
		return nil, err
	}
	return mapper.DecodeGitLabIssues(raws)
}

func (c *GitLabClient) ListMergeRequests(ctx context.Context, project string, since time.Time) ([]mapper.GitLabMergeRequest, error) {
	raws, err := c.list(ctx, project, "merge_requests", since)
	if err != nil {
		return nil, err
	}
	return mapper.DecodeGitLabMergeRequests(raws)
}

type GitLabImportParams struct {
	// Project is the full path, e.g. "group/widgets"; empty uses the default.
	Project string
	Since   time.Time
}

type GitLabImportResult struct {
	Imported int64     `json:"imported"`
	Project  string    `json:"project"`
	Since    time.Time `json:"since"`
}

type GitLabImporter interface {
	Import(ctx context.Context, params GitLabImportParams) (*GitLabImportResult, error)
}

type gitLabImporter struct {
	client         *GitLabClient
	mapper         *mapper.GitLabMapper
	defaultProject string
	workspaceID    string
	sink           sink
	now            func() time.Time
}

// NewGitLabImporter builds an importer. client may be nil when no token is
// configured; imports then fail with ErrMissingProject.
func NewGitLabImporter(client *GitLabClient, defaultProject, workspaceID string, activities store.ActivityStore, producer queue.Producer, log *slog.Logger) GitLabImporter {
	return &gitLabImporter{
		client:         client,
		mapper:         mapper.NewGitLabMapper(),
		defaultProject: defaultProject,
		workspaceID:    workspaceID,
		sink:           newSink(activities, producer, log),
		now:            time.Now,
	}
}

func (i *gitLabImporter) Import(ctx context.Context, params GitLabImportParams) (*GitLabImportResult, error) {
	project := strings.Trim(strings.TrimSpace(params.Project), "/")
	if project == "" {
		project = i.defaultProject
	}
	if i.client == nil || project == "" {
		return nil, ErrMissingProject
	}
	importedAt := i.now().UTC()
	since := defaultSince(params.Since, importedAt)

	ctx = importContext(ctx, model.ProviderGitLab, i.workspaceID, project)
	sc := logger.StartSpan(ctx, "importer.gitlab")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.String("gitlab.project", project))

	n, err := i.run(ctx, project, since, importedAt)
	if err != nil {
		sc.RecordError(err)
		i.sink.logger.ErrorContext(ctx, "gitlab import failed", "error", err)
		return nil, err
	}

	sc.SetAttributes(attribute.Int64("import.count", n))
	return &GitLabImportResult{Imported: n, Project: project, Since: since}, nil
}

func (i *gitLabImporter) run(ctx context.Context, project string, since, importedAt time.Time) (int64, error) {
	issues, err := i.client.ListIssues(ctx, project, since)
	if err != nil {
		return 0, err
	}
	mrs, err := i.client.ListMergeRequests(ctx, project, since)
	if err != nil {
		return 0, err
	}

	events := make([]model.ActivityEvent, 0, len(issues)+len(mrs))
	for _, issue := range issues {
		if e := i.mapper.MapIssue(i.workspaceID, project, issue, importedAt); !e.OccurredAt.Before(since) {
			events = append(events, e)
		}
	}
	for _, mr := range mrs {
		if e := i.mapper.MapMergeRequest(i.workspaceID, project, mr, importedAt); !e.OccurredAt.Before(since) {
			events = append(events, e)
		}
	}

	n, err := i.sink.save(ctx, queue.ImportMessage{
		Provider:    model.ProviderGitLab,
		WorkspaceID: i.workspaceID,
		Source:      project,
		Since:       since,
	}, events)
	if err != nil {
		return 0, err
	}
	i.sink.logger.InfoContext(ctx, "gitlab import completed", "issues", len(issues), "merge_requests", len(mrs), "imported", n)
	return n, nil
}
