package dto

import (
	"github.com/sam3690/syncly/internal/feed"
	"github.com/sam3690/syncly/internal/model"
)

type ActivityListResponse struct {
	Items    []model.ActivityEvent `json:"items"`
	Count    int                   `json:"count"`
	Fallback bool                  `json:"fallback,omitempty"`
}

func NewActivityListResponse(items []model.ActivityEvent, fallback bool) ActivityListResponse {
	if items == nil {
		items = []model.ActivityEvent{}
	}
	return ActivityListResponse{Items: items, Count: len(items), Fallback: fallback}
}

type ActivityGroupsResponse struct {
	Groups   []feed.Group `json:"groups"`
	Count    int          `json:"count"`
	Fallback bool         `json:"fallback,omitempty"`
}

func NewActivityGroupsResponse(groups []feed.Group, fallback bool) ActivityGroupsResponse {
	if groups == nil {
		groups = []feed.Group{}
	}
	return ActivityGroupsResponse{Groups: groups, Count: len(groups), Fallback: fallback}
}
