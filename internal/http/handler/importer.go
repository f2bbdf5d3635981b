package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sam3690/syncly/internal/http/dto"
	"github.com/sam3690/syncly/internal/service/importer"
)

type ImportHandler struct {
	github importer.GitHubImporter
	slack  importer.SlackImporter
	gitlab importer.GitLabImporter
}

func NewImportHandler(github importer.GitHubImporter, slack importer.SlackImporter, gitlab importer.GitLabImporter) *ImportHandler {
	return &ImportHandler{github: github, slack: slack, gitlab: gitlab}
}

func (h *ImportHandler) GitHub(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.GitHubImportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	since, err := parseSince(q.Since)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.github.Import(ctx, importer.GitHubImportParams{Repo: q.Repo, Since: since})
	if err != nil {
		importFailed(c, "github", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) Slack(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.SlackImportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit := 0
	if s := strings.TrimSpace(q.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": importer.ErrInvalidLimit.Error()})
			return
		}
		limit = n
	}

	result, err := h.slack.Import(ctx, importer.SlackImportParams{
		Channel: strings.TrimSpace(q.Channel),
		Oldest:  strings.TrimSpace(q.Oldest),
		Limit:   limit,
	})
	if err != nil {
		importFailed(c, "slack", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) GitLab(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.GitLabImportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	since, err := parseSince(q.Since)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.gitlab.Import(ctx, importer.GitLabImportParams{Project: q.Project, Since: since})
	if err != nil {
		importFailed(c, "gitlab", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseSince reads an RFC 3339 timestamp; empty means the importer default.
func parseSince(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, importer.ErrInvalidSince
	}
	return t, nil
}

func importFailed(c *gin.Context, provider string, err error) {
	if importer.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slog.ErrorContext(c.Request.Context(), "import failed", "provider", provider, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
