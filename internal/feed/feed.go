// Package feed regroups stored activity into per-context threads for display.
package feed

import (
	"sort"
	"time"

	"github.com/sam3690/syncly/internal/model"
)

// Group is every event of one context, newest first.
type Group struct {
	Provider     model.Provider        `json:"provider"`
	ContextType  string                `json:"context_type"`
	ContextID    string                `json:"context_id"`
	ContextLabel string                `json:"context_label"`
	LatestAt     time.Time             `json:"latest_at"`
	Events       []model.ActivityEvent `json:"events"`
}

type bucketKey struct {
	provider  model.Provider
	contextID string
}

// GroupByContext buckets events by (provider, context_id), orders each bucket
// newest first and orders buckets by their newest event. Sorting is stable so
// ties keep input order. Events without a context id each form their own
// bucket.
func GroupByContext(events []model.ActivityEvent) []Group {
	index := make(map[bucketKey]int)
	var groups []Group

	for _, e := range events {
		key := bucketKey{provider: e.Provider, contextID: e.ContextID}
		i, ok := index[key]
		if !ok || e.ContextID == "" {
			i = len(groups)
			if e.ContextID != "" {
				index[key] = i
			}
			groups = append(groups, Group{
				Provider:     e.Provider,
				ContextType:  e.ContextType,
				ContextID:    e.ContextID,
				ContextLabel: e.ContextLabel,
			})
		}
		groups[i].Events = append(groups[i].Events, e)
	}

	for i := range groups {
		evs := groups[i].Events
		sort.SliceStable(evs, func(a, b int) bool {
			return evs[a].OccurredAt.After(evs[b].OccurredAt)
		})
		groups[i].LatestAt = evs[0].OccurredAt
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].LatestAt.After(groups[b].LatestAt)
	})
	return groups
}
