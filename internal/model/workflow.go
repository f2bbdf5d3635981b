package model

import (
	"encoding/json"
	"time"
)

type WorkflowStatus string

const (
	WorkflowStatusActive    WorkflowStatus = "active"
	WorkflowStatusPaused    WorkflowStatus = "paused"
	WorkflowStatusCompleted WorkflowStatus = "completed"
)

type Workflow struct {
	ID               int64                 `json:"id,string"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Status           WorkflowStatus        `json:"status"`
	Progress         int32                 `json:"progress"`
	Tasks            int32                 `json:"tasks"`
	Members          int32                 `json:"members"`
	Category         *string               `json:"category"`
	LastUpdatedLabel string                `json:"last_updated_label"`
	CreatedBy        *string               `json:"created_by"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	Integrations     []WorkflowIntegration `json:"workflow_integrations,omitempty"`
}

// WorkflowIntegration links a workflow to a provider resource, e.g. a repo or channel.
type WorkflowIntegration struct {
	ID        string          `json:"id"`
	Platform  Provider        `json:"platform"`
	Config    json.RawMessage `json:"config"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// WorkflowPatch carries the fields of a partial update; nil means unchanged.
type WorkflowPatch struct {
	Name             *string
	Description      *string
	Status           *WorkflowStatus
	Progress         *int32
	Tasks            *int32
	Members          *int32
	Category         *string
	LastUpdatedLabel *string
}
