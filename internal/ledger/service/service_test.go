package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/ledger/store"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/audit/publisher"
	"tally/pkg/requestcontext"
)

func newTestService(t *testing.T) (*Service, *publisher.MemoryPublisher) {
	t.Helper()
	events := publisher.NewMemory()
	svc, err := New(store.NewMemory(), WithAuditPublisher(events))
	require.NoError(t, err)
	return svc, events
}

func TestLogValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Log(ctx, 0, 1, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = svc.Log(ctx, 1, 0, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = svc.Log(ctx, 1, 1, 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = svc.Log(ctx, 1, 1, -10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestLogCapturesTickAndEmitsAudit(t *testing.T) {
	svc, events := newTestService(t)
	ctx := requestcontext.WithTick(context.Background(), 42)

	id, err := svc.Log(ctx, 1, 2, 500)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationID(0), id)

	detail, err := svc.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Tick(42), detail.Tick)

	assert.Contains(t, events.Actions(), "donation_logged")
}

func TestCapacityExceededAfterTwoHundredEntries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		_, err := svc.Log(ctx, 2, domain.CampaignID(i%4+1), 1)
		require.NoError(t, err)
	}

	_, err := svc.Log(ctx, 2, 1, 1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacityExceeded))

	count, err := svc.CountByDonor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 200, count)
}

func TestPaginationContract(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := svc.Log(ctx, 1, 1, int64(i+1))
		require.NoError(t, err)
	}

	page, err := svc.DonationsByDonor(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 30, page.Total)
	assert.True(t, page.HasMore)

	page, err = svc.DonationsByDonor(ctx, 1, 20, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.False(t, page.HasMore)

	page, err = svc.DonationsByDonor(ctx, 1, 40, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)

	campaignPage, err := svc.DonationsByCampaign(ctx, 1, 25, 100)
	require.NoError(t, err)
	assert.Len(t, campaignPage.Items, 5)
	assert.False(t, campaignPage.HasMore)
}

func TestPageLimitBounds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.DonationsByDonor(ctx, 1, 0, 101)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeQueryLimitExceeded))

	_, err = svc.DonationsByCampaign(ctx, 1, 0, 101)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeQueryLimitExceeded))

	_, err = svc.DonationsByDonor(ctx, 1, 0, 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.DonationsByDonor(ctx, 1, -1, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.DonationsByDonor(ctx, 1, 0, 100)
	assert.NoError(t, err)
}

func TestAggregatesAndStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.HasDonations)

	_, err = svc.Log(ctx, 1, 1, 100)
	require.NoError(t, err)
	_, err = svc.Log(ctx, 1, 2, 200)
	require.NoError(t, err)
	_, err = svc.Log(ctx, 2, 1, 50)
	require.NoError(t, err)

	total, err := svc.TotalByDonor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)

	total, err = svc.TotalByCampaign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)

	count, err := svc.CountByCampaign(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.TotalDonations)
	assert.Equal(t, domain.DonationID(2), stats.LatestID)
	assert.True(t, stats.HasDonations)
}

func TestDetailUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Detail(context.Background(), 7)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
