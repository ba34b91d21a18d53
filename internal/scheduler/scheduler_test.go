package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"trackersync/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) TransitionMergedStories(context.Context) (domain.PassResult, error) {
	c.calls.Add(1)
	return domain.PassResult{Kind: domain.PassPoll}, c.err
}

func TestScheduler_Disabled(t *testing.T) {
	sw := &countingSweeper{}
	New(sw, 0, zap.NewNop().Sugar()).Run(context.Background())
	assert.Equal(t, int32(0), sw.calls.Load())
}

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	sw := &countingSweeper{err: errors.New("tracker down")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		New(sw, 5*time.Millisecond, zap.NewNop().Sugar()).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sw.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
