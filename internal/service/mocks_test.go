package service_test

import (
	"context"

	"github.com/sam3690/syncly/common/llm"
	"github.com/sam3690/syncly/internal/model"
)

type mockActivityStore struct {
	createBatchFn     func(ctx context.Context, events []model.ActivityEvent) (int64, error)
	listByWorkspaceFn func(ctx context.Context, workspaceID string, limit int32) ([]model.ActivityEvent, error)
}

func (m *mockActivityStore) CreateBatch(ctx context.Context, events []model.ActivityEvent) (int64, error) {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, events)
	}
	return int64(len(events)), nil
}

func (m *mockActivityStore) ListByWorkspace(ctx context.Context, workspaceID string, limit int32) ([]model.ActivityEvent, error) {
	if m.listByWorkspaceFn != nil {
		return m.listByWorkspaceFn(ctx, workspaceID, limit)
	}
	return nil, nil
}

type mockWorkflowStore struct {
	listFn   func(ctx context.Context, limit int32) ([]model.Workflow, error)
	createFn func(ctx context.Context, workflow *model.Workflow) error
	updateFn func(ctx context.Context, id int64, patch model.WorkflowPatch) (*model.Workflow, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockWorkflowStore) List(ctx context.Context, limit int32) ([]model.Workflow, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockWorkflowStore) Create(ctx context.Context, workflow *model.Workflow) error {
	if m.createFn != nil {
		return m.createFn(ctx, workflow)
	}
	return nil
}

func (m *mockWorkflowStore) Update(ctx context.Context, id int64, patch model.WorkflowPatch) (*model.Workflow, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockWorkflowStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockLLMClient struct {
	chatFn func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
	calls  int
}

func (m *mockLLMClient) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	m.calls++
	if m.chatFn != nil {
		return m.chatFn(ctx, req, result)
	}
	return &llm.Response{}, nil
}

func (m *mockLLMClient) Model() string { return "test-model" }
