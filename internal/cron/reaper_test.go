package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/dynamic-forms/internal/config"
	"github.com/stretchr/testify/assert"
)

type fakeReaper struct {
	mu    sync.Mutex
	calls []time.Duration
	n     int
	err   error
}

func (f *fakeReaper) ReapDrafts(_ context.Context, olderThan time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, olderThan)
	return f.n, f.err
}

func (f *fakeReaper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestRunDraftReap(t *testing.T) {
	r := &fakeReaper{n: 4}
	assert.Equal(t, 4, RunDraftReap(context.Background(), r))
	assert.Equal(t, []time.Duration{config.DraftRetention}, r.calls)

	r = &fakeReaper{n: 1, err: errors.New("db down")}
	assert.Equal(t, 1, RunDraftReap(context.Background(), r))
}

func TestStartDraftReaper_RunsUntilCancelled(t *testing.T) {
	orig := config.DraftReapInterval
	config.DraftReapInterval = 10 * time.Millisecond
	defer func() { config.DraftReapInterval = orig }()

	r := &fakeReaper{}
	ctx, cancel := context.WithCancel(context.Background())
	StartDraftReaper(ctx, r)

	assert.Eventually(t, func() bool { return r.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := r.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, r.count())
}
