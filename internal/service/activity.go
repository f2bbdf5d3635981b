package service

import (
	"context"
	"fmt"

	"github.com/sam3690/syncly/internal/feed"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/store"
)

// ActivityListLimit caps how many events a workspace listing returns.
const ActivityListLimit = 200

type ActivityService interface {
	List(ctx context.Context) ([]model.ActivityEvent, error)
	Grouped(ctx context.Context) ([]feed.Group, error)
}

type activityService struct {
	activities  store.ActivityStore
	workspaceID string
}

func NewActivityService(activities store.ActivityStore, workspaceID string) ActivityService {
	return &activityService{
		activities:  activities,
		workspaceID: workspaceID,
	}
}

// List returns the workspace's newest events first.
func (s *activityService) List(ctx context.Context) ([]model.ActivityEvent, error) {
	events, err := s.activities.ListByWorkspace(ctx, s.workspaceID, ActivityListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return events, nil
}

func (s *activityService) Grouped(ctx context.Context) ([]feed.Group, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return feed.GroupByContext(events), nil
}
