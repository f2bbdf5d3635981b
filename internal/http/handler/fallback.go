package handler

import (
	"time"

	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/service"
)

// Fallback decides whether list endpoints answer with demo content when the
// store fails. The zero value never serves fallback data.
type Fallback struct {
	Enabled     bool
	WorkspaceID string
	Now         func() time.Time
}

func (f Fallback) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f Fallback) workflows() []model.Workflow {
	return service.FallbackWorkflows(f.now())
}

func (f Fallback) activities() []model.ActivityEvent {
	return service.FallbackActivities(f.WorkspaceID, f.now())
}
