package store

import (
	"github.com/sam3690/syncly/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Activities() ActivityStore {
	return newActivityStore(s.queries)
}

func (s *Stores) Workflows() WorkflowStore {
	return newWorkflowStore(s.queries)
}
