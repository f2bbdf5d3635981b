package importer

import (
	"errors"
	"fmt"

	"github.com/sam3690/syncly/internal/model"
)

var (
	ErrInvalidRepo    = errors.New("GITHUB_REPO not set or invalid (expected owner/repo)")
	ErrMissingToken   = errors.New("SLACK_BOT_TOKEN missing")
	ErrMissingChannel = errors.New("slack channel missing")
	ErrMissingProject = errors.New("GITLAB_TOKEN or project missing")
	ErrInvalidSince   = errors.New("since must be an RFC 3339 timestamp")
	ErrInvalidOldest  = errors.New("oldest must be a Slack timestamp (epoch seconds)")
	ErrInvalidLimit   = errors.New("limit must be a positive integer")
)

// UpstreamError is a provider call that did not succeed: a non-2xx response,
// or a Slack envelope with ok=false (Status 200, Code set).
type UpstreamError struct {
	Provider model.Provider
	Status   int
	Code     string
	Message  string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func upstreamHTTPError(provider model.Provider, status int, format string, args ...any) *UpstreamError {
	return &UpstreamError{
		Provider: provider,
		Status:   status,
		Message:  fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	for _, target := range []error{ErrInvalidRepo, ErrMissingToken, ErrMissingChannel, ErrMissingProject, ErrInvalidSince, ErrInvalidOldest, ErrInvalidLimit} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
