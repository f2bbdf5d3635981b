package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sam3690/syncly/common/id"
	"github.com/sam3690/syncly/core/db/sqlc"
	"github.com/sam3690/syncly/internal/model"
)

// editedLabel replaces the display label on every update.
const editedLabel = "just now"

type workflowStore struct {
	queries *sqlc.Queries
}

func newWorkflowStore(queries *sqlc.Queries) WorkflowStore {
	return &workflowStore{queries: queries}
}

func (s *workflowStore) List(ctx context.Context, limit int32) ([]model.Workflow, error) {
	rows, err := s.queries.ListWorkflows(ctx, limit)
	if err != nil {
		return nil, err
	}
	workflows := make([]model.Workflow, 0, len(rows))
	for _, row := range rows {
		workflows = append(workflows, *toWorkflowModel(row))
	}
	return workflows, nil
}

func (s *workflowStore) Create(ctx context.Context, workflow *model.Workflow) error {
	if workflow.ID == 0 {
		workflow.ID = id.New()
	}
	row, err := s.queries.CreateWorkflow(ctx, sqlc.CreateWorkflowParams{
		ID:               workflow.ID,
		Name:             workflow.Name,
		Description:      workflow.Description,
		Status:           string(workflow.Status),
		Progress:         workflow.Progress,
		Tasks:            workflow.Tasks,
		Members:          workflow.Members,
		Category:         workflow.Category,
		LastUpdatedLabel: workflow.LastUpdatedLabel,
		CreatedBy:        workflow.CreatedBy,
	})
	if err != nil {
		return err
	}
	*workflow = *toWorkflowModel(row)
	return nil
}

func (s *workflowStore) Update(ctx context.Context, workflowID int64, patch model.WorkflowPatch) (*model.Workflow, error) {
	label := editedLabel
	if patch.LastUpdatedLabel != nil {
		label = *patch.LastUpdatedLabel
	}
	var status *string
	if patch.Status != nil {
		v := string(*patch.Status)
		status = &v
	}

	row, err := s.queries.UpdateWorkflow(ctx, sqlc.UpdateWorkflowParams{
		Name:             patch.Name,
		Description:      patch.Description,
		Status:           status,
		Progress:         patch.Progress,
		Tasks:            patch.Tasks,
		Members:          patch.Members,
		Category:         patch.Category,
		LastUpdatedLabel: label,
		ID:               workflowID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWorkflowModel(row), nil
}

func (s *workflowStore) Delete(ctx context.Context, workflowID int64) error {
	return s.queries.DeleteWorkflow(ctx, workflowID)
}

func toWorkflowModel(row sqlc.Workflow) *model.Workflow {
	return &model.Workflow{
		ID:               row.ID,
		Name:             row.Name,
		Description:      row.Description,
		Status:           model.WorkflowStatus(row.Status),
		Progress:         row.Progress,
		Tasks:            row.Tasks,
		Members:          row.Members,
		Category:         row.Category,
		LastUpdatedLabel: row.LastUpdatedLabel,
		CreatedBy:        row.CreatedBy,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}
