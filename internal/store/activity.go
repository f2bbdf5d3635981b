package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sam3690/syncly/common/id"
	"github.com/sam3690/syncly/core/db/sqlc"
	"github.com/sam3690/syncly/internal/model"
)

var emptyMetadata = []byte("{}")

type activityStore struct {
	queries *sqlc.Queries
}

func newActivityStore(queries *sqlc.Queries) ActivityStore {
	return &activityStore{queries: queries}
}

// CreateBatch writes the events with a single COPY, which commits or fails as
// a unit. Events without an id are assigned one.
func (s *activityStore) CreateBatch(ctx context.Context, events []model.ActivityEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	rows := make([]sqlc.CreateActivityEventsParams, len(events))
	for i := range events {
		if events[i].ID == 0 {
			events[i].ID = id.New()
		}
		rows[i] = toCreateActivityParams(events[i])
	}
	return s.queries.CreateActivityEvents(ctx, rows)
}

func (s *activityStore) ListByWorkspace(ctx context.Context, workspaceID string, limit int32) ([]model.ActivityEvent, error) {
	rows, err := s.queries.ListActivityEventsByWorkspace(ctx, sqlc.ListActivityEventsByWorkspaceParams{
		WorkspaceID: workspaceID,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	events := make([]model.ActivityEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, toActivityModel(row))
	}
	return events, nil
}

func toCreateActivityParams(e model.ActivityEvent) sqlc.CreateActivityEventsParams {
	metadata := []byte(e.Metadata)
	if len(metadata) == 0 {
		metadata = emptyMetadata
	}
	return sqlc.CreateActivityEventsParams{
		ID:           e.ID,
		WorkspaceID:  e.WorkspaceID,
		Provider:     string(e.Provider),
		Type:         e.Type,
		Title:        e.Title,
		Description:  e.Description,
		Url:          e.URL,
		Actor:        e.Actor,
		Metadata:     metadata,
		OccurredAt:   pgtype.Timestamptz{Time: e.OccurredAt, Valid: true},
		ContextType:  e.ContextType,
		ContextID:    e.ContextID,
		ContextLabel: e.ContextLabel,
	}
}

func toActivityModel(row sqlc.ActivityEvent) model.ActivityEvent {
	return model.ActivityEvent{
		ID:           row.ID,
		WorkspaceID:  row.WorkspaceID,
		Provider:     model.Provider(row.Provider),
		Type:         row.Type,
		Title:        row.Title,
		Description:  row.Description,
		URL:          row.Url,
		Actor:        row.Actor,
		Metadata:     json.RawMessage(row.Metadata),
		OccurredAt:   row.OccurredAt.Time,
		ContextType:  row.ContextType,
		ContextID:    row.ContextID,
		ContextLabel: row.ContextLabel,
		CreatedAt:    pgTimestamptzToTime(row.CreatedAt),
	}
}

func pgTimestamptzToTime(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
