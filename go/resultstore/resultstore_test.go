package resultstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADR3N4LYN3/pdf-compare/go/stats"
)

func newTestStore(t *testing.T) ResultStore {
	store, err := NewBoltResultStore(t.TempDir(), "results.db")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func testRec(runID string, ts time.Time, identical bool) *ResultRec {
	different := 1
	if identical {
		different = 0
	}
	pages := []*stats.PageStats{
		stats.CalcPageStats(0, identical, 30000, different*300, nil),
	}
	return &ResultRec{
		RunID:     runID,
		Timestamp: ts,
		Stats:     stats.CalcComparisonStats("a.pdf", "b.pdf", 1, 1, pages),
	}
}

func TestPutGet(t *testing.T) {
	store := newTestStore(t)

	ts := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	rec := testRec("run-1", ts, false)
	require.NoError(t, store.Put(rec))

	got, err := store.Get("run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, got.Timestamp.Equal(ts))
	require.NotNil(t, got.Stats)
	assert.Equal(t, "a.pdf", got.Stats.LeftPath)
	assert.Equal(t, 1, got.Stats.DifferentPages)
	assert.False(t, got.Stats.IsIdentical())
}

func TestGet_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get("no-such-run")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPut_EmptyRunID(t *testing.T) {
	store := newTestStore(t)
	err := store.Put(testRec("", time.Now(), true))
	require.Error(t, err)
}

func TestPut_OverwritesExistingRun(t *testing.T) {
	store := newTestStore(t)

	ts := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(testRec("run-1", ts, false)))
	require.NoError(t, store.Put(testRec("run-1", ts, true)))

	got, err := store.Get("run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Stats.IsIdentical())

	ids, err := store.GetRunIDs(BeginningOfTime, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1"}, ids)
}

func TestGetRunIDs(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	// Inserted out of timestamp order on purpose.
	require.NoError(t, store.Put(testRec("run-c", base.Add(3*time.Hour), true)))
	require.NoError(t, store.Put(testRec("run-a", base.Add(1*time.Hour), true)))
	require.NoError(t, store.Put(testRec("run-b", base.Add(2*time.Hour), true)))

	// All runs, sorted by timestamp.
	ids, err := store.GetRunIDs(BeginningOfTime, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"run-a", "run-b", "run-c"}, ids)

	// The time range bounds are inclusive.
	ids, err = store.GetRunIDs(base.Add(1*time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"run-a", "run-b"}, ids)

	ids, err = store.GetRunIDs(base.Add(4*time.Hour), base.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemoveRun(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put(testRec("run-1", time.Now().UTC(), true)))
	require.NoError(t, store.RemoveRun("run-1"))

	got, err := store.Get("run-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Removing a run that does not exist is not an error.
	require.NoError(t, store.RemoveRun("run-1"))
}
