package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

func TestAppendAssignsGaplessIDs(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id, err := s.Append(ctx, 1, 1, 10, domain.Tick(i))
		require.NoError(t, err)
		assert.Equal(t, domain.DonationID(i), id)
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), stats.TotalDonations)
	assert.Equal(t, domain.DonationID(4), stats.LatestID)
	assert.True(t, stats.HasDonations)
}

func TestEmptyLedgerStats(t *testing.T) {
	s := NewMemory()
	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDonations)
	assert.False(t, stats.HasDonations)
}

func TestDetailRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	id, err := s.Append(ctx, 3, 7, 250, 42)
	require.NoError(t, err)

	detail, err := s.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DonorID(3), detail.Donor)
	assert.Equal(t, domain.CampaignID(7), detail.Campaign)
	assert.Equal(t, int64(250), detail.Amount)
	assert.Equal(t, domain.Tick(42), detail.Tick)

	_, err = s.Detail(ctx, 99)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDonorListCap(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	// Spread across campaigns so only the donor's list fills.
	for i := 0; i < 200; i++ {
		_, err := s.Append(ctx, 2, domain.CampaignID(i%5+1), 1, 0)
		require.NoError(t, err)
	}

	_, err := s.Append(ctx, 2, 1, 1, 0)
	assert.ErrorIs(t, err, sentinel.ErrCapacity)

	count, err := s.CountByDonor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 200, count)

	// A different donor can still append; the failed append burned no id.
	id, err := s.Append(ctx, 3, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationID(200), id)
}

func TestCampaignListCapBlocksWithoutPartialWrite(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		_, err := s.Append(ctx, domain.DonorID(i%5+1), 9, 1, 0)
		require.NoError(t, err)
	}

	_, err := s.Append(ctx, 6, 9, 1, 0)
	assert.ErrorIs(t, err, sentinel.ErrCapacity)

	// The donor side of the rejected append must stay empty.
	count, err := s.CountByDonor(ctx, 6)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPaginationWindows(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := s.Append(ctx, 1, 1, int64(i+1), domain.Tick(i))
		require.NoError(t, err)
	}

	items, total, err := s.DonationsByDonor(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items, 10)
	assert.Equal(t, domain.DonationID(0), items[0].Donation)
	assert.Equal(t, domain.DonationID(9), items[9].Donation)

	items, _, err = s.DonationsByDonor(ctx, 1, 20, 10)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, domain.DonationID(20), items[0].Donation)

	items, total, err = s.DonationsByDonor(ctx, 1, 30, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, items)

	items2, total, err := s.DonationsByCampaign(ctx, 1, 24, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items2, 1)
	assert.Equal(t, domain.DonationID(24), items2[0].Donation)
}

func TestAggregates(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Append(ctx, 1, 1, 100, 0)
	require.NoError(t, err)
	_, err = s.Append(ctx, 1, 2, 200, 0)
	require.NoError(t, err)
	_, err = s.Append(ctx, 2, 1, 50, 0)
	require.NoError(t, err)

	total, err := s.TotalByDonor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)

	total, err = s.TotalByCampaign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)

	count, err := s.CountByCampaign(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	total, err = s.TotalByDonor(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, total)
}
