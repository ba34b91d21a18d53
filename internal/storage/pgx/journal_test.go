package pgx

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"trackersync/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	st, err := NewPgxStorage(ctx, dsn, 2, WithQueryTimeout(5*time.Second))
	require.NoError(t, err)
	t.Cleanup(st.Close)

	require.NoError(t, st.Ping(ctx))
	require.NoError(t, st.Migrate(ctx))

	_, err = st.pool.Exec(ctx, `TRUNCATE delivery_passes CASCADE;`)
	require.NoError(t, err)

	return st
}

func TestStorage_RecordPass(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	pull := 7
	started := time.Now().UTC().Truncate(time.Millisecond)

	push := domain.PassResult{
		Kind:       domain.PassPush,
		PullNumber: &pull,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Scanned:    3,
		Delivered: []domain.StoryInfo{
			{ID: 2, Name: "a", State: domain.StateDelivered, PullNumber: &pull},
			{ID: 3, Name: "b", Owner: "Ada", State: domain.StateDelivered, PullNumber: &pull},
		},
		Failures: []domain.StoryFailure{
			{StoryID: 4, Stage: domain.StageActivity, Err: errors.New("timeout")},
		},
	}
	require.NoError(t, st.RecordPass(ctx, push))

	poll := domain.PassResult{
		Kind:       domain.PassPoll,
		StartedAt:  started.Add(time.Minute),
		FinishedAt: started.Add(time.Minute),
		Failures:   []domain.StoryFailure{{Stage: domain.StageSearch, Err: errors.New("401")}},
	}
	require.NoError(t, st.RecordPass(ctx, poll))

	records, err := st.RecentPasses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.PassPoll, records[0].Kind)
	assert.Nil(t, records[0].PullNumber)
	assert.Equal(t, 1, records[0].Failures)

	assert.Equal(t, domain.PassPush, records[1].Kind)
	require.NotNil(t, records[1].PullNumber)
	assert.Equal(t, 7, *records[1].PullNumber)
	assert.Equal(t, 2, records[1].Delivered)
	assert.Equal(t, 1, records[1].Failures)
	assert.Equal(t, 3, records[1].Scanned)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(ctx context.Context) error {
		require.NotNil(t, TxFromContext(ctx))
		_, err := st.getExecutor(ctx).Exec(ctx,
			`INSERT INTO delivery_passes (kind, started_at, finished_at) VALUES ('poll', now(), now());`)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	records, err := st.RecentPasses(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTxFromContext_Empty(t *testing.T) {
	assert.Nil(t, TxFromContext(context.Background()))
}
