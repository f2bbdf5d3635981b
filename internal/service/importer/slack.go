package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sam3690/syncly/common/logger"
	"github.com/sam3690/syncly/internal/mapper"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/store"
)

const (
	DefaultSlackLimit = 100
	slackNotInChannel = "not_in_channel"
	botActor          = "bot"
)

type slackEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// SlackClient calls the Web API with a bot token.
type SlackClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewSlackClient(baseURL, token string, httpClient *http.Client) *SlackClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SlackClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// call performs a GET Web API method and decodes the body into out. The
// ok flag is left to the caller; only transport failures are errors here.
func (c *SlackClient) call(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := c.baseURL + "/" + method + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building slack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling slack %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamHTTPError(model.ProviderSlack, resp.StatusCode, "Slack HTTP %d %s", resp.StatusCode, method)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding slack %s: %w", method, err)
	}
	return nil
}

func slackAPIError(code, format string) *UpstreamError {
	return &UpstreamError{
		Provider: model.ProviderSlack,
		Status:   http.StatusOK,
		Code:     code,
		Message:  fmt.Sprintf(format, code),
	}
}

// History returns the raw messages of a channel newer than oldest.
func (c *SlackClient) History(ctx context.Context, channel, oldest string, limit int) ([]json.RawMessage, error) {
	var resp struct {
		slackEnvelope
		Messages []json.RawMessage `json:"messages"`
	}
	params := url.Values{
		"channel": {channel},
		"oldest":  {oldest},
		"limit":   {strconv.Itoa(limit)},
	}
	if err := c.call(ctx, "conversations.history", params, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, slackAPIError(resp.Error, "Slack history error: %s")
	}
	return resp.Messages, nil
}

func (c *SlackClient) Join(ctx context.Context, channel string) error {
	var resp slackEnvelope
	if err := c.call(ctx, "conversations.join", url.Values{"channel": {channel}}, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return slackAPIError(resp.Error, "join failed: %s")
	}
	return nil
}

// ChannelName returns the channel's name, or "" when Slack has none.
func (c *SlackClient) ChannelName(ctx context.Context, channel string) (string, error) {
	var resp struct {
		slackEnvelope
		Channel struct {
			Name string `json:"name"`
		} `json:"channel"`
	}
	if err := c.call(ctx, "conversations.info", url.Values{"channel": {channel}}, &resp); err != nil {
		return "", err
	}
	if !resp.OK {
		return "", slackAPIError(resp.Error, "Slack channel info error: %s")
	}
	return resp.Channel.Name, nil
}

// UserName returns the display name of a user: real name, then handle.
func (c *SlackClient) UserName(ctx context.Context, user string) (string, error) {
	var resp struct {
		slackEnvelope
		User struct {
			Name    string `json:"name"`
			Profile struct {
				RealName string `json:"real_name"`
			} `json:"profile"`
		} `json:"user"`
	}
	if err := c.call(ctx, "users.info", url.Values{"user": {user}}, &resp); err != nil {
		return "", err
	}
	if !resp.OK {
		return "", slackAPIError(resp.Error, "Slack user info error: %s")
	}
	if resp.User.Profile.RealName != "" {
		return resp.User.Profile.RealName, nil
	}
	return resp.User.Name, nil
}

type SlackImportParams struct {
	// Channel overrides the configured default channel.
	Channel string
	// Oldest is a Slack timestamp; empty means seven days back.
	Oldest string
	// Limit caps the history page; zero means DefaultSlackLimit.
	Limit int
}

type SlackImportResult struct {
	Imported int64  `json:"imported"`
	Channel  string `json:"channel"`
	Oldest   string `json:"oldest"`
	Limit    int    `json:"limit"`
}

type SlackImporter interface {
	Import(ctx context.Context, params SlackImportParams) (*SlackImportResult, error)
}

type slackImporter struct {
	client         *SlackClient
	mapper         *mapper.SlackMapper
	defaultChannel string
	workspaceID    string
	sink           sink
	now            func() time.Time
}

// NewSlackImporter builds an importer. client may be nil when no bot token
// is configured; imports then fail with ErrMissingToken.
func NewSlackImporter(client *SlackClient, defaultChannel, workspaceID string, activities store.ActivityStore, producer queue.Producer, log *slog.Logger) SlackImporter {
	return &slackImporter{
		client:         client,
		mapper:         mapper.NewSlackMapper(),
		defaultChannel: defaultChannel,
		workspaceID:    workspaceID,
		sink:           newSink(activities, producer, log),
		now:            time.Now,
	}
}

// SlackTS renders t the way Slack cursors look: fractional epoch seconds.
func SlackTS(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMilli())/1000, 'f', -1, 64)
}

func (i *slackImporter) Import(ctx context.Context, params SlackImportParams) (*SlackImportResult, error) {
	if i.client == nil || i.client.token == "" {
		return nil, ErrMissingToken
	}
	channel := params.Channel
	if channel == "" {
		channel = i.defaultChannel
	}
	if channel == "" {
		return nil, ErrMissingChannel
	}
	limit := params.Limit
	if limit == 0 {
		limit = DefaultSlackLimit
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	importedAt := i.now().UTC()
	oldest := params.Oldest
	if oldest == "" {
		oldest = SlackTS(importedAt.Add(-DefaultLookback))
	} else if _, err := strconv.ParseFloat(oldest, 64); err != nil {
		return nil, ErrInvalidOldest
	}

	ctx = importContext(ctx, model.ProviderSlack, i.workspaceID, channel)
	sc := logger.StartSpan(ctx, "importer.slack")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.String("slack.channel", channel))

	n, err := i.run(ctx, channel, oldest, limit, importedAt)
	if err != nil {
		sc.RecordError(err)
		i.sink.logger.ErrorContext(ctx, "slack import failed", "error", err)
		return nil, err
	}

	sc.SetAttributes(attribute.Int64("import.count", n))
	return &SlackImportResult{Imported: n, Channel: channel, Oldest: oldest, Limit: limit}, nil
}

func (i *slackImporter) run(ctx context.Context, channel, oldest string, limit int, importedAt time.Time) (int64, error) {
	raws, err := i.history(ctx, channel, oldest, limit)
	if err != nil {
		return 0, err
	}
	msgs, err := mapper.DecodeSlackMessages(raws)
	if err != nil {
		return 0, err
	}

	name, err := i.client.ChannelName(ctx, channel)
	if err != nil || name == "" {
		if err != nil {
			i.sink.logger.WarnContext(ctx, "slack channel name unavailable", "error", err)
		}
		name = channel
	}
	ch := mapper.SlackChannel{ID: channel, Name: name}

	// Scoped to this import; discarded when it returns.
	names := make(map[string]string)

	events := make([]model.ActivityEvent, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Text == "" {
			continue
		}
		actor := i.resolveActor(ctx, names, msg.User)
		if event, ok := i.mapper.Map(i.workspaceID, ch, actor, msg, importedAt); ok {
			events = append(events, event)
		}
	}

	since, _ := strconv.ParseFloat(oldest, 64)
	n, err := i.sink.save(ctx, queue.ImportMessage{
		Provider:    model.ProviderSlack,
		WorkspaceID: i.workspaceID,
		Source:      channel,
		Since:       time.Unix(int64(since), 0),
	}, events)
	if err != nil {
		return 0, err
	}
	i.sink.logger.InfoContext(ctx, "slack import completed", "fetched", len(msgs), "imported", n)
	return n, nil
}

// history fetches the channel, joining it and retrying once when the bot
// is not a member.
func (i *slackImporter) history(ctx context.Context, channel, oldest string, limit int) ([]json.RawMessage, error) {
	raws, err := i.client.History(ctx, channel, oldest, limit)
	var upstream *UpstreamError
	if err == nil || !errors.As(err, &upstream) || upstream.Code != slackNotInChannel {
		return raws, err
	}

	i.sink.logger.InfoContext(ctx, "joining slack channel before retry")
	if err := i.client.Join(ctx, channel); err != nil {
		return nil, err
	}
	return i.client.History(ctx, channel, oldest, limit)
}

func (i *slackImporter) resolveActor(ctx context.Context, names map[string]string, user string) string {
	if user == "" {
		return botActor
	}
	if name, ok := names[user]; ok {
		return name
	}
	name, err := i.client.UserName(ctx, user)
	if err != nil || name == "" {
		if err != nil {
			i.sink.logger.DebugContext(ctx, "slack user lookup failed", "user", user, "error", err)
		}
		name = user
	}
	names[user] = name
	return name
}
