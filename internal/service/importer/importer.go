// Package importer pulls recent activity from providers, normalizes it and
// appends it to the activity store.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sam3690/syncly/common/id"
	"github.com/sam3690/syncly/common/logger"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/queue"
	"github.com/sam3690/syncly/internal/store"
)

// DefaultLookback is how far back an import reaches when no start is given.
const DefaultLookback = 7 * 24 * time.Hour

// pageSize is the single page requested from GitHub and GitLab. Later pages
// are not fetched.
const pageSize = 50

// sink appends a batch of events and announces it.
type sink struct {
	activities store.ActivityStore
	producer   queue.Producer
	logger     *slog.Logger
}

func newSink(activities store.ActivityStore, producer queue.Producer, log *slog.Logger) sink {
	if producer == nil {
		producer = queue.NewNoopProducer()
	}
	if log == nil {
		log = slog.Default()
	}
	return sink{activities: activities, producer: producer, logger: log}
}

func (s sink) save(ctx context.Context, msg queue.ImportMessage, events []model.ActivityEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	n, err := s.activities.CreateBatch(ctx, events)
	if err != nil {
		return 0, fmt.Errorf("inserting activity events: %w", err)
	}

	msg.Imported = n
	if err := s.producer.Publish(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "import notification not published", "error", err)
	}
	return n, nil
}

// importContext tags ctx with the fields every import log line carries.
func importContext(ctx context.Context, provider model.Provider, workspaceID, source string) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{
		WorkspaceID: logger.Ptr(workspaceID),
		Provider:    logger.Ptr(string(provider)),
		ImportID:    logger.Ptr(id.New()),
		Source:      logger.Ptr(source),
		Component:   "syncly.importer." + string(provider),
	})
}

func defaultSince(since, now time.Time) time.Time {
	if since.IsZero() {
		return now.Add(-DefaultLookback)
	}
	return since
}
