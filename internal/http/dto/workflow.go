package dto

import (
	"github.com/sam3690/syncly/internal/model"
)

type CreateWorkflowRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Status           string  `json:"status" binding:"omitempty,oneof=active paused completed"`
	Progress         *int32  `json:"progress" binding:"omitempty,min=0,max=100"`
	Tasks            *int32  `json:"tasks" binding:"omitempty,min=0"`
	Members          *int32  `json:"members" binding:"omitempty,min=0"`
	Category         *string `json:"category"`
	LastUpdatedLabel string  `json:"lastUpdatedLabel"`
}

// UpdateWorkflowRequest is a partial update; absent fields stay unchanged.
type UpdateWorkflowRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1"`
	Description      *string `json:"description"`
	Status           *string `json:"status" binding:"omitempty,oneof=active paused completed"`
	Progress         *int32  `json:"progress" binding:"omitempty,min=0,max=100"`
	Tasks            *int32  `json:"tasks" binding:"omitempty,min=0"`
	Members          *int32  `json:"members" binding:"omitempty,min=0"`
	Category         *string `json:"category"`
	LastUpdatedLabel *string `json:"lastUpdatedLabel"`
}

func (r UpdateWorkflowRequest) ToPatch() model.WorkflowPatch {
	patch := model.WorkflowPatch{
		Name:             r.Name,
		Description:      r.Description,
		Progress:         r.Progress,
		Tasks:            r.Tasks,
		Members:          r.Members,
		Category:         r.Category,
		LastUpdatedLabel: r.LastUpdatedLabel,
	}
	if r.Status != nil {
		status := model.WorkflowStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type WorkflowListResponse struct {
	Items    []model.Workflow `json:"items"`
	Count    int              `json:"count"`
	Fallback bool             `json:"fallback,omitempty"`
}

func NewWorkflowListResponse(items []model.Workflow, fallback bool) WorkflowListResponse {
	if items == nil {
		items = []model.Workflow{}
	}
	return WorkflowListResponse{Items: items, Count: len(items), Fallback: fallback}
}
