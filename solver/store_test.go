package solver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "trace.db")

	ts, err := OpenTraceStore(dbPath)
	require.NoError(t, err)
	defer ts.Close()

	tr := NewTrace()
	tr.record(nil, 3, 0, OutcomeSolvedMatched)
	tr.record([]int{1}, 2, 1, OutcomeSolvedMatched)
	tr.record([]int{1, 2}, 0, 5, OutcomeDeadEnd)

	require.NoError(t, ts.Save(ctx, "run-1", tr))

	n, err := ts.LoadNode(ctx, "run-1", "1/2")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 0, n.Branches)
	assert.Equal(t, 5, n.MoveCount)
	assert.Equal(t, OutcomeDeadEnd, n.Outcome)

	root, err := ts.LoadNode(ctx, "run-1", "")
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, 3, root.Branches)
}

func TestTraceStoreReplacesRun(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "trace.db")

	ts, err := OpenTraceStore(dbPath)
	require.NoError(t, err)
	defer ts.Close()

	tr := NewTrace()
	tr.record([]int{1}, 1, 1, OutcomeSolvedMatched)
	require.NoError(t, ts.Save(ctx, "run-1", tr))

	tr2 := NewTrace()
	tr2.record([]int{2}, 4, 2, OutcomeSolvedImproved)
	require.NoError(t, ts.Save(ctx, "run-1", tr2))

	gone, err := ts.LoadNode(ctx, "run-1", "1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	n, err := ts.LoadNode(ctx, "run-1", "2")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, OutcomeSolvedImproved, n.Outcome)
}

func TestTraceStoreMissingNode(t *testing.T) {
	ts, err := OpenTraceStore(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	defer ts.Close()

	n, err := ts.LoadNode(context.Background(), "nope", "1/1")
	require.NoError(t, err)
	assert.Nil(t, n)
}
