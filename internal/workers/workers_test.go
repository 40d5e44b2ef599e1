package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(_ context.Context) {
	m.runCount.Add(1)
}

// blockingWorker blocks in Run until its context is cancelled.
type blockingWorker struct {
	started chan struct{}
}

func (b *blockingWorker) Run(ctx context.Context) {
	close(b.started)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic and should return immediately on an empty set
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestWorkers_Run_BlocksUntilWorkersReturn(t *testing.T) {
	w := &blockingWorker{started: make(chan struct{})}
	ws := NewWorkers(w)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	<-w.started

	select {
	case <-done:
		t.Fatal("Run returned while a worker was still running")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run(context.Background())
	ws.Run(context.Background())
	ws.Run(context.Background())

	if got := w.runCount.Load(); got != 3 {
		t.Errorf("expected runCount=3 after 3 calls, got %d", got)
	}
}
