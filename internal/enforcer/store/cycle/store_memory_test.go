package cycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/pkg/platform/sentinel"
)

func TestRecordAccumulatesPerCycle(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, 1, 7, 0, 100))
	require.NoError(t, store.Record(ctx, 1, 7, 0, 50))
	require.NoError(t, store.Record(ctx, 1, 7, 1, 25))

	total, err := store.DonorTotal(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)

	total, err = store.DonorTotal(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	total, err = store.CampaignTotal(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)
}

func TestUnseenTotalsAreZero(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	total, err := store.DonorTotal(ctx, 99, 3)
	require.NoError(t, err)
	assert.Zero(t, total)

	total, err = store.CampaignTotal(ctx, 99, 3)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReleaseUndoesRecord(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, 1, 7, 0, 100))
	require.NoError(t, store.Release(ctx, 1, 7, 0, 100))

	total, err := store.DonorTotal(ctx, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReleaseBelowZeroFails(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, 1, 7, 0, 100))

	err := store.Release(ctx, 1, 7, 0, 200)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)

	// A failed release must leave both totals untouched.
	total, _ := store.DonorTotal(ctx, 1, 0)
	assert.Equal(t, int64(100), total)
	total, _ = store.CampaignTotal(ctx, 7, 0)
	assert.Equal(t, int64(100), total)
}

func TestCycleStatsCountsRecords(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, 1, 7, 0, 10))
	require.NoError(t, store.Record(ctx, 2, 7, 0, 10))
	require.NoError(t, store.Record(ctx, 3, 8, 1, 10))

	donors, campaigns, err := store.CycleStats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, donors)
	assert.Equal(t, 1, campaigns)

	donors, campaigns, err = store.CycleStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, donors)
	assert.Equal(t, 1, campaigns)
}
