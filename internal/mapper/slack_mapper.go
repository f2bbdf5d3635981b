package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sam3690/syncly/internal/model"
)

// SlackMessage is one entry of conversations.history.
type SlackMessage struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
	User     string `json:"user"`
	BotID    string `json:"bot_id"`

	raw json.RawMessage
}

func (m SlackMessage) Provider() model.Provider { return model.ProviderSlack }

func (m SlackMessage) RawJSON() json.RawMessage { return m.raw }

func (m SlackMessage) InThread() bool { return m.ThreadTS != "" }

// DecodeSlackMessages decodes the messages array of a history response.
func DecodeSlackMessages(raws []json.RawMessage) ([]SlackMessage, error) {
	msgs, err := decodeRaw(raws, func(msg *SlackMessage, raw json.RawMessage) { msg.raw = raw })
	if err != nil {
		return nil, fmt.Errorf("decoding slack messages: %w", err)
	}
	return msgs, nil
}

// SlackChannel names the channel a batch of messages came from.
type SlackChannel struct {
	ID   string
	Name string
}

// SlackContext groups thread replies by thread and everything else by channel.
func SlackContext(channel SlackChannel, msg SlackMessage) model.ActivityContext {
	if msg.InThread() {
		return model.ActivityContext{
			Type:  model.ContextSlackThread,
			ID:    channel.ID + ":" + msg.ThreadTS,
			Label: fmt.Sprintf("#%s • thread %s", channel.Name, msg.ThreadTS),
		}
	}
	return model.ActivityContext{
		Type:  model.ContextSlackChannel,
		ID:    channel.ID,
		Label: "#" + channel.Name,
	}
}

// SlackTimestamp converts a Slack "seconds.micros" ts to an instant,
// dropping the fractional part. A missing ts is epoch zero; an unreadable
// one falls back to fallback.
func SlackTimestamp(ts string, fallback time.Time) time.Time {
	seconds, _, _ := strings.Cut(ts, ".")
	if seconds == "" {
		seconds = "0"
	}
	n, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return fallback.UTC()
	}
	return time.Unix(n, 0).UTC()
}

type SlackMapper struct{}

func NewSlackMapper() *SlackMapper {
	return &SlackMapper{}
}

// Map normalizes one message. Messages without text are skipped and
// reported with ok=false.
func (m *SlackMapper) Map(workspaceID string, channel SlackChannel, actor string, msg SlackMessage, importedAt time.Time) (model.ActivityEvent, bool) {
	if msg.Text == "" {
		return model.ActivityEvent{}, false
	}

	event := newEvent(workspaceID, msg)
	event.Type = EventMessage
	title := TruncateRunes(msg.Text, MaxSlackTitleLength)
	event.Title = &title
	event.Description = truncatedDescription(&msg.Text)
	event.Actor = optional(actor)
	event.OccurredAt = SlackTimestamp(msg.TS, importedAt)
	event.SetContext(SlackContext(channel, msg))
	return event, true
}
