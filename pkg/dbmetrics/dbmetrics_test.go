package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

type fakeStats struct{}

func (fakeStats) Stats() sql.DBStats {
	return sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3, WaitCount: 2, WaitDuration: time.Second}
}

type recorder struct {
	mu    sync.Mutex
	calls int
	open  int
}

func (r *recorder) SetDBStats(open, _, _ int, _ int64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.open = open
}

func (r *recorder) snapshot() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, r.open
}

func TestStartPoolCollector(t *testing.T) {
	rec := &recorder{}
	stop := make(chan struct{})

	StartPoolCollector(fakeStats{}, rec, 10*time.Millisecond, stop)

	require.Eventually(t, func() bool {
		calls, _ := rec.snapshot()
		return calls >= 2
	}, time.Second, 5*time.Millisecond)
	close(stop)

	_, open := rec.snapshot()
	assert.Equal(t, 4, open)
}
