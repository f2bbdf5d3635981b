package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sam3690/syncly/common/id"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/store"
)

const (
	WorkflowListLimit       = 200
	defaultWorkflowMembers  = 1
	defaultLastUpdatedLabel = "just now"
)

// CreateWorkflowParams holds a new workflow. Nil numeric fields take the
// defaults (progress 0, tasks 0, members 1).
type CreateWorkflowParams struct {
	Name             string
	Description      string
	Status           model.WorkflowStatus
	Progress         *int32
	Tasks            *int32
	Members          *int32
	Category         string
	LastUpdatedLabel string
	CreatedBy        string
}

type WorkflowService interface {
	List(ctx context.Context) ([]model.Workflow, error)
	Create(ctx context.Context, params CreateWorkflowParams) (*model.Workflow, error)
	Update(ctx context.Context, id int64, patch model.WorkflowPatch) (*model.Workflow, error)
	Delete(ctx context.Context, id int64) error
}

type workflowService struct {
	workflows store.WorkflowStore
}

func NewWorkflowService(workflows store.WorkflowStore) WorkflowService {
	return &workflowService{workflows: workflows}
}

func (s *workflowService) List(ctx context.Context) ([]model.Workflow, error) {
	workflows, err := s.workflows.List(ctx, WorkflowListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing workflows: %w", err)
	}
	return workflows, nil
}

func (s *workflowService) Create(ctx context.Context, params CreateWorkflowParams) (*model.Workflow, error) {
	if params.Name == "" {
		return nil, ErrNameRequired
	}

	workflow := &model.Workflow{
		ID:               id.New(),
		Name:             params.Name,
		Description:      params.Description,
		Status:           params.Status,
		Progress:         valueOr(params.Progress, 0),
		Tasks:            valueOr(params.Tasks, 0),
		Members:          valueOr(params.Members, defaultWorkflowMembers),
		LastUpdatedLabel: params.LastUpdatedLabel,
	}
	if workflow.Status == "" {
		workflow.Status = model.WorkflowStatusActive
	}
	if workflow.LastUpdatedLabel == "" {
		workflow.LastUpdatedLabel = defaultLastUpdatedLabel
	}
	if params.Category != "" {
		workflow.Category = &params.Category
	}
	if params.CreatedBy != "" {
		workflow.CreatedBy = &params.CreatedBy
	}

	if err := s.workflows.Create(ctx, workflow); err != nil {
		slog.ErrorContext(ctx, "failed to create workflow", "error", err, "name", params.Name)
		return nil, fmt.Errorf("creating workflow: %w", err)
	}

	slog.InfoContext(ctx, "workflow created", "workflow_id", workflow.ID)
	return workflow, nil
}

// Update applies a partial patch. A missing workflow yields store.ErrNotFound.
func (s *workflowService) Update(ctx context.Context, workflowID int64, patch model.WorkflowPatch) (*model.Workflow, error) {
	workflow, err := s.workflows.Update(ctx, workflowID, patch)
	if err != nil {
		return nil, fmt.Errorf("updating workflow: %w", err)
	}
	slog.InfoContext(ctx, "workflow updated", "workflow_id", workflowID)
	return workflow, nil
}

func (s *workflowService) Delete(ctx context.Context, workflowID int64) error {
	if err := s.workflows.Delete(ctx, workflowID); err != nil {
		return fmt.Errorf("deleting workflow: %w", err)
	}
	slog.InfoContext(ctx, "workflow deleted", "workflow_id", workflowID)
	return nil
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
