package importer_test

import (
	"context"
	"net/http"
	"sync"

	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/queue"
)

type mockActivityStore struct {
	createBatchFn func(ctx context.Context, events []model.ActivityEvent) (int64, error)
	batches       [][]model.ActivityEvent
}

func (m *mockActivityStore) CreateBatch(ctx context.Context, events []model.ActivityEvent) (int64, error) {
	m.batches = append(m.batches, events)
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, events)
	}
	return int64(len(events)), nil
}

func (m *mockActivityStore) ListByWorkspace(context.Context, string, int32) ([]model.ActivityEvent, error) {
	return nil, nil
}

type mockProducer struct {
	mu        sync.Mutex
	publishFn func(ctx context.Context, msg queue.ImportMessage) error
	messages  []queue.ImportMessage
}

func (m *mockProducer) Publish(ctx context.Context, msg queue.ImportMessage) error {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, msg)
	}
	return nil
}

func (m *mockProducer) Close() error { return nil }

// requestLog records requests seen by an httptest server.
type requestLog struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reqs = append(l.reqs, r)
}

func (l *requestLog) last() *http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.reqs) == 0 {
		return nil
	}
	return l.reqs[len(l.reqs)-1]
}

func (l *requestLog) paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.reqs))
	for _, r := range l.reqs {
		out = append(out, r.URL.Path)
	}
	return out
}
