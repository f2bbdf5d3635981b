package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/service"
)

var _ = Describe("ActivityService", func() {
	var (
		activities *mockActivityStore
		svc        service.ActivityService
		ctx        context.Context
	)

	BeforeEach(func() {
		activities = &mockActivityStore{}
		svc = service.NewActivityService(activities, "demo")
		ctx = context.Background()
	})

	It("lists the configured workspace with the row cap", func() {
		var gotWorkspace string
		var gotLimit int32
		activities.listByWorkspaceFn = func(_ context.Context, workspaceID string, limit int32) ([]model.ActivityEvent, error) {
			gotWorkspace, gotLimit = workspaceID, limit
			return []model.ActivityEvent{{ID: 1}}, nil
		}

		events, err := svc.List(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(events).To(HaveLen(1))
		Expect(gotWorkspace).To(Equal("demo"))
		Expect(gotLimit).To(Equal(int32(service.ActivityListLimit)))
	})

	It("wraps store errors", func() {
		activities.listByWorkspaceFn = func(context.Context, string, int32) ([]model.ActivityEvent, error) {
			return nil, errors.New("timeout")
		}
		_, err := svc.List(ctx)
		Expect(err).To(MatchError(ContainSubstring("listing activities: timeout")))
	})

	It("groups the listing by context", func() {
		now := time.Now()
		activities.listByWorkspaceFn = func(context.Context, string, int32) ([]model.ActivityEvent, error) {
			return []model.ActivityEvent{
				{ID: 1, Provider: model.ProviderGitHub, ContextID: "a#1", OccurredAt: now},
				{ID: 2, Provider: model.ProviderGitHub, ContextID: "a#1", OccurredAt: now.Add(-time.Hour)},
				{ID: 3, Provider: model.ProviderSlack, ContextID: "C1", OccurredAt: now.Add(-2 * time.Hour)},
			}, nil
		}

		groups, err := svc.Grouped(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(groups).To(HaveLen(2))
		Expect(groups[0].Events).To(HaveLen(2))
		Expect(groups[1].ContextID).To(Equal("C1"))
	})
})
