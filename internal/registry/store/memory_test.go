package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

func TestMemoryStoreSequentialIDs(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	first, err := s.CreateDonor(ctx, "donor-a", 0)
	require.NoError(t, err)
	second, err := s.CreateDonor(ctx, "donor-b", 5)
	require.NoError(t, err)

	assert.Equal(t, domain.DonorID(1), first.ID)
	assert.Equal(t, domain.DonorID(2), second.ID)
	assert.Equal(t, domain.Tick(5), second.RegisteredAt)

	// Campaign ids count independently of donor ids.
	campaign, err := s.CreateCampaign(ctx, "campaign-a", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignID(1), campaign.ID)
}

func TestMemoryStoreRejectsDuplicateAddress(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.CreateDonor(ctx, "donor-a", 0)
	require.NoError(t, err)

	_, err = s.CreateDonor(ctx, "donor-a", 1)
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	// A failed duplicate must not burn an id.
	next, err := s.CreateDonor(ctx, "donor-b", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DonorID(2), next.ID)
}

func TestMemoryStoreLookups(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.CreateCampaign(ctx, "campaign-a", 7)
	require.NoError(t, err)

	byAddr, err := s.CampaignByAddress(ctx, "campaign-a")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byAddr.ID)

	byID, err := s.CampaignByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("campaign-a"), byID.Address)

	_, err = s.CampaignByAddress(ctx, "unknown")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = s.DonorByID(ctx, 99)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStoreCounts(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, _ = s.CreateDonor(ctx, "d1", 0)
	_, _ = s.CreateDonor(ctx, "d2", 0)
	_, _ = s.CreateCampaign(ctx, "c1", 0)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Donors)
	assert.Equal(t, 1, counts.Campaigns)
}
