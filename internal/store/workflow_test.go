package store_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/core/db/sqlc"
	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/store"
)

var _ = Describe("WorkflowStore", func() {
	var (
		fake      *fakeDB
		workflows store.WorkflowStore
		ctx       context.Context
	)

	BeforeEach(func() {
		fake = &fakeDB{}
		workflows = store.NewStores(sqlc.New(fake)).Workflows()
		ctx = context.Background()
	})

	Describe("Update", func() {
		It("maps a missing row to ErrNotFound", func() {
			fake.queryRowErr = pgx.ErrNoRows
			_, err := workflows.Update(ctx, 99, model.WorkflowPatch{})
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("passes other errors through", func() {
			fake.queryRowErr = errors.New("deadlock detected")
			_, err := workflows.Update(ctx, 99, model.WorkflowPatch{})
			Expect(err).To(MatchError("deadlock detected"))
			Expect(err).ToNot(MatchError(store.ErrNotFound))
		})

		It("sends only the patched fields and resets the label", func() {
			fake.queryRowErr = pgx.ErrNoRows
			name := "Renamed"
			status := model.WorkflowStatusPaused
			_, _ = workflows.Update(ctx, 7, model.WorkflowPatch{Name: &name, Status: &status})

			Expect(fake.queryRowArgs).To(HaveLen(9))
			Expect(fake.queryRowArgs[0]).To(Equal(&name))
			Expect(*fake.queryRowArgs[2].(*string)).To(Equal("paused"))
			Expect(fake.queryRowArgs[1]).To(BeNil())
			Expect(fake.queryRowArgs[7]).To(Equal("just now"))
			Expect(fake.queryRowArgs[8]).To(Equal(int64(7)))
		})
	})

	Describe("Delete", func() {
		It("deletes by id", func() {
			Expect(workflows.Delete(ctx, 5)).To(Succeed())
			Expect(fake.execSQL).To(ContainSubstring("DELETE FROM workflows"))
			Expect(fake.execArgs).To(Equal([]any{int64(5)}))
		})
	})

	Describe("Create", func() {
		It("assigns an id before inserting", func() {
			fake.queryRowErr = errors.New("insert failed")
			w := &model.Workflow{Name: "Launch"}
			Expect(workflows.Create(ctx, w)).To(MatchError("insert failed"))
			Expect(w.ID).ToNot(BeZero())
			Expect(fake.queryRowArgs[0]).To(Equal(w.ID))
		})
	})
})
