package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/service"
	"github.com/sam3690/syncly/internal/store"
)

var _ = Describe("WorkflowService", func() {
	var (
		workflows *mockWorkflowStore
		svc       service.WorkflowService
		ctx       context.Context
	)

	BeforeEach(func() {
		workflows = &mockWorkflowStore{}
		svc = service.NewWorkflowService(workflows)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("requires a name", func() {
			_, err := svc.Create(ctx, service.CreateWorkflowParams{})
			Expect(err).To(MatchError(service.ErrNameRequired))
		})

		It("applies defaults", func() {
			var stored *model.Workflow
			workflows.createFn = func(_ context.Context, w *model.Workflow) error {
				stored = w
				return nil
			}

			w, err := svc.Create(ctx, service.CreateWorkflowParams{Name: "Launch", CreatedBy: "auth0|123"})

			Expect(err).ToNot(HaveOccurred())
			Expect(w).To(Equal(stored))
			Expect(w.ID).ToNot(BeZero())
			Expect(w.Description).To(BeEmpty())
			Expect(w.Status).To(Equal(model.WorkflowStatusActive))
			Expect(w.Progress).To(BeZero())
			Expect(w.Tasks).To(BeZero())
			Expect(w.Members).To(Equal(int32(1)))
			Expect(w.Category).To(BeNil())
			Expect(w.LastUpdatedLabel).To(Equal("just now"))
			Expect(*w.CreatedBy).To(Equal("auth0|123"))
		})

		It("keeps provided values", func() {
			progress, members := int32(40), int32(5)
			w, err := svc.Create(ctx, service.CreateWorkflowParams{
				Name:     "Launch",
				Status:   model.WorkflowStatusPaused,
				Progress: &progress,
				Members:  &members,
				Category: "Ops",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(w.Status).To(Equal(model.WorkflowStatusPaused))
			Expect(w.Progress).To(Equal(int32(40)))
			Expect(w.Members).To(Equal(int32(5)))
			Expect(*w.Category).To(Equal("Ops"))
			Expect(w.CreatedBy).To(BeNil())
		})

		It("wraps store errors", func() {
			workflows.createFn = func(context.Context, *model.Workflow) error { return errors.New("unique violation") }
			_, err := svc.Create(ctx, service.CreateWorkflowParams{Name: "x"})
			Expect(err).To(MatchError(ContainSubstring("unique violation")))
		})
	})

	Describe("Update", func() {
		It("keeps ErrNotFound detectable", func() {
			workflows.updateFn = func(context.Context, int64, model.WorkflowPatch) (*model.Workflow, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.Update(ctx, 1, model.WorkflowPatch{})
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})

		It("passes the patch through", func() {
			name := "Renamed"
			workflows.updateFn = func(_ context.Context, id int64, patch model.WorkflowPatch) (*model.Workflow, error) {
				return &model.Workflow{ID: id, Name: *patch.Name}, nil
			}
			w, err := svc.Update(ctx, 9, model.WorkflowPatch{Name: &name})
			Expect(err).ToNot(HaveOccurred())
			Expect(w.ID).To(Equal(int64(9)))
			Expect(w.Name).To(Equal("Renamed"))
		})
	})

	It("lists with the row cap", func() {
		var gotLimit int32
		workflows.listFn = func(_ context.Context, limit int32) ([]model.Workflow, error) {
			gotLimit = limit
			return nil, nil
		}
		_, err := svc.List(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(gotLimit).To(Equal(int32(service.WorkflowListLimit)))
	})

	It("deletes", func() {
		var deleted int64
		workflows.deleteFn = func(_ context.Context, id int64) error {
			deleted = id
			return nil
		}
		Expect(svc.Delete(ctx, 3)).To(Succeed())
		Expect(deleted).To(Equal(int64(3)))
	})
})
