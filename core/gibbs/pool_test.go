package gibbs

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunExecutesEveryTask(t *testing.T) {
	p := newPool(3)
	var count int32
	tasks := make([]func() error, 10)
	for i := range tasks {
		tasks[i] = func() error {
			atomic.AddInt32(&count, 1)
			return nil
		}
	}
	if err := p.run(tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 10 {
		t.Errorf("expected all 10 tasks to run, got %d", count)
	}
}

func TestPoolRunPropagatesError(t *testing.T) {
	p := newPool(2)
	wantErr := errors.New("boom")
	tasks := []func() error{
		func() error { return nil },
		func() error { return wantErr },
		func() error { return nil },
	}
	if err := p.run(tasks); err != wantErr {
		t.Errorf("expected run to return %v, got %v", wantErr, err)
	}
}

func TestPoolRunEmpty(t *testing.T) {
	p := newPool(4)
	if err := p.run(nil); err != nil {
		t.Errorf("expected no error for an empty task list, got %v", err)
	}
}

func TestNewPoolClampsToOne(t *testing.T) {
	p := newPool(0)
	if p.workers != 1 {
		t.Errorf("expected newPool(0) to clamp to 1 worker, got %d", p.workers)
	}
}
