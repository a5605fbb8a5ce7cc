package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"recruit-match/internal/models"

	"go.uber.org/zap"
)

type fakeRunner struct {
	mu     sync.Mutex
	result *models.SyncResult
	err    error
	calls  int
	forced []bool
	done   chan struct{}
}

func (f *fakeRunner) EnsureSynced(_ context.Context, force bool) (*models.SyncResult, error) {
	f.mu.Lock()
	f.calls++
	f.forced = append(f.forced, force)
	f.mu.Unlock()

	if f.done != nil {
		select {
		case f.done <- struct{}{}:
		default:
		}
	}
	return f.result, f.err
}

type fakeWarmer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeWarmer) FilterOptions(_ context.Context, _ bool) (*models.FilterOptions, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return &models.FilterOptions{}, nil
}

func TestRunSyncWarmsFacetsAfterPass(t *testing.T) {
	runner := &fakeRunner{result: &models.SyncResult{TotalFetched: 10}}
	warmer := &fakeWarmer{}
	s := New(runner, warmer, zap.NewNop(), 1)

	s.runSync(context.Background())

	if warmer.calls != 1 {
		t.Errorf("expected one facet warmup after a pass, got %d", warmer.calls)
	}
}

func TestRunSyncSkipsWarmupWhenFresh(t *testing.T) {
	runner := &fakeRunner{result: nil}
	warmer := &fakeWarmer{}
	s := New(runner, warmer, zap.NewNop(), 1)

	s.runSync(context.Background())

	if warmer.calls != 0 {
		t.Errorf("fresh catalog must not warm facets, got %d calls", warmer.calls)
	}
}

func TestRunSyncSkipsWarmupOnError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("registry down")}
	warmer := &fakeWarmer{}
	s := New(runner, warmer, zap.NewNop(), 1)

	s.runSync(context.Background())

	if warmer.calls != 0 {
		t.Errorf("failed pass must not warm facets, got %d calls", warmer.calls)
	}
}

func TestStartRunsImmediateSync(t *testing.T) {
	runner := &fakeRunner{
		result: &models.SyncResult{},
		done:   make(chan struct{}, 1),
	}
	s := New(runner, nil, zap.NewNop(), 1)
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-runner.done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate sync on start")
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.forced) == 0 || runner.forced[0] {
		t.Error("scheduled runs must not force a sync")
	}
}
