package mapper

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sam3690/syncly/internal/model"
)

// Activity types emitted by the normalizers. The set is open: the column is
// free-form and other providers add their own tags.
const (
	EventPROpened    = "pr_opened"
	EventPRMerged    = "pr_merged"
	EventPRClosed    = "pr_closed"
	EventIssueOpened = "issue_opened"
	EventIssueClosed = "issue_closed"
	EventMessage     = "message"
	EventMROpened    = "mr_opened"
	EventMRMerged    = "mr_merged"
	EventMRClosed    = "mr_closed"
)

const (
	// MaxDescriptionLength caps stored description text, in characters.
	MaxDescriptionLength = 10000
	// MaxSlackTitleLength is how much of a message becomes its title.
	MaxSlackTitleLength = 140
)

// Payload is a provider item decoded at the import boundary. Each provider
// has its own concrete type; nothing provider-shaped travels past Map.
type Payload interface {
	Provider() model.Provider
	RawJSON() json.RawMessage
}

// newEvent seeds an event with the fields every provider shares.
func newEvent(workspaceID string, p Payload) model.ActivityEvent {
	return model.ActivityEvent{
		WorkspaceID: workspaceID,
		Provider:    p.Provider(),
		Metadata:    p.RawJSON(),
	}
}

// TruncateRunes returns the first n characters of s.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// optional returns nil for empty strings so absent provider fields stay null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}

func truncatedDescription(body *string) *string {
	if body == nil || *body == "" {
		return nil
	}
	d := TruncateRunes(*body, MaxDescriptionLength)
	return &d
}

// firstTimestamp returns the first candidate that parses as RFC 3339,
// falling back to the supplied ingestion time.
func firstTimestamp(fallback time.Time, candidates ...*string) time.Time {
	for _, c := range candidates {
		if c == nil || *c == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, *c); err == nil {
			return t.UTC()
		}
	}
	return fallback.UTC()
}

// numberLiteral reports whether raw is a JSON number and returns it formatted
// the way it reads in a URL or label ("42", not "42.0").
func numberLiteral(raw json.RawMessage) (string, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s[0] == '"' {
		return "", false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// decodeEach splits a JSON array and decodes every element into T, keeping
// the element bytes untouched for metadata.
func decodeEach[T any](body []byte, attach func(*T, json.RawMessage)) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, err
	}
	return decodeRaw(raws, attach)
}

func decodeRaw[T any](raws []json.RawMessage, attach func(*T, json.RawMessage)) ([]T, error) {
	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		attach(&item, raw)
		items = append(items, item)
	}
	return items, nil
}
