package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sam3690/syncly/common/logger"
	"github.com/sam3690/syncly/internal/mapper"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/store"
)

const userAgent = "syncly-importer"

// GitHub owner and repository names use this alphabet.
var repoSegment = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// GitHubClient reads the REST API. Responses are kept as raw bytes so the
// stored metadata is exactly what GitHub sent.
type GitHubClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewGitHubClient(baseURL, token string, httpClient *http.Client) *GitHubClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GitHubClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// ListIssues returns the first page of issues and pull requests updated at
// or after since.
func (c *GitHubClient) ListIssues(ctx context.Context, owner, name string, since time.Time) ([]mapper.GitHubItem, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues?state=all&since=%s&per_page=%d",
		url.PathEscape(owner), url.PathEscape(name),
		url.QueryEscape(since.UTC().Format(time.RFC3339Nano)), pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building github request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamHTTPError(model.ProviderGitHub, resp.StatusCode, "GitHub HTTP %d %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading github response: %w", err)
	}
	return mapper.DecodeGitHubItems(body)
}

type GitHubImportParams struct {
	// Repo is "owner/name"; empty uses the configured default.
	Repo  string
	Since time.Time
}

type GitHubImportResult struct {
	Imported int64     `json:"imported"`
	Repo     string    `json:"repo"`
	Since    time.Time `json:"since"`
}

type GitHubImporter interface {
	Import(ctx context.Context, params GitHubImportParams) (*GitHubImportResult, error)
}

type gitHubImporter struct {
	client      *GitHubClient
	mapper      *mapper.GitHubMapper
	defaultRepo string
	workspaceID string
	sink        sink
	now         func() time.Time
}

func NewGitHubImporter(client *GitHubClient, defaultRepo, workspaceID string, activities store.ActivityStore, producer queue.Producer, log *slog.Logger) GitHubImporter {
	return &gitHubImporter{
		client:      client,
		mapper:      mapper.NewGitHubMapper(),
		defaultRepo: defaultRepo,
		workspaceID: workspaceID,
		sink:        newSink(activities, producer, log),
		now:         time.Now,
	}
}

// SplitRepo validates an "owner/name" reference. Each segment must be a
// plain GitHub name; "." and ".." are rejected.
func SplitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	if !ok || !validRepoSegment(owner) || !validRepoSegment(name) {
		return "", "", ErrInvalidRepo
	}
	return owner, name, nil
}

func validRepoSegment(s string) bool {
	return s != "." && s != ".." && repoSegment.MatchString(s)
}

func (i *gitHubImporter) Import(ctx context.Context, params GitHubImportParams) (*GitHubImportResult, error) {
	repo := params.Repo
	if strings.TrimSpace(repo) == "" {
		repo = i.defaultRepo
	}
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	repo = owner + "/" + name
	importedAt := i.now().UTC()
	since := defaultSince(params.Since, importedAt)

	ctx = importContext(ctx, model.ProviderGitHub, i.workspaceID, repo)
	sc := logger.StartSpan(ctx, "importer.github")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.String("github.repo", repo))

	items, err := i.client.ListIssues(ctx, owner, name, since)
	if err != nil {
		sc.RecordError(err)
		i.sink.logger.ErrorContext(ctx, "github import failed", "error", err)
		return nil, err
	}

	events := make([]model.ActivityEvent, 0, len(items))
	for _, item := range items {
		event := i.mapper.Map(i.workspaceID, owner, name, item, importedAt)
		if event.OccurredAt.Before(since) {
			continue
		}
		events = append(events, event)
	}

	n, err := i.sink.save(ctx, queue.ImportMessage{
		Provider:    model.ProviderGitHub,
		WorkspaceID: i.workspaceID,
		Source:      repo,
		Since:       since,
	}, events)
	if err != nil {
		sc.RecordError(err)
		i.sink.logger.ErrorContext(ctx, "github import failed", "error", err)
		return nil, err
	}

	sc.SetAttributes(attribute.Int64("import.count", n))
	i.sink.logger.InfoContext(ctx, "github import completed", "fetched", len(items), "imported", n)
	return &GitHubImportResult{Imported: n, Repo: repo, Since: since}, nil
}
