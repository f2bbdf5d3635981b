package store

import (
	"context"
	"errors"

	"github.com/sam3690/syncly/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ActivityStore is the append-only log of normalized events.
type ActivityStore interface {
	// CreateBatch inserts all events or none of them and returns the count.
	CreateBatch(ctx context.Context, events []model.ActivityEvent) (int64, error)
	ListByWorkspace(ctx context.Context, workspaceID string, limit int32) ([]model.ActivityEvent, error)
}

// WorkflowStore defines the contract for workflow data access
type WorkflowStore interface {
	List(ctx context.Context, limit int32) ([]model.Workflow, error)
	Create(ctx context.Context, workflow *model.Workflow) error
	Update(ctx context.Context, id int64, patch model.WorkflowPatch) (*model.Workflow, error)
	Delete(ctx context.Context, id int64) error
}
