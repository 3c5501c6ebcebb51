package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/registry/store"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/audit"
	"tally/pkg/platform/audit/publisher"
)

func newService(t *testing.T) (*Service, *publisher.MemoryPublisher) {
	t.Helper()
	sink := publisher.NewMemory()
	svc, err := New(store.NewMemory(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(sink),
	)
	require.NoError(t, err)
	return svc, sink
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry store is required")
}

func TestRegisterAndResolveDonor(t *testing.T) {
	svc, sink := newService(t)
	ctx := context.Background()

	identity, err := svc.RegisterDonor(ctx, "donor-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, identity.ID)

	id, err := svc.ResolveDonor(ctx, "donor-1")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, id)

	assert.Contains(t, sink.Actions(), string(audit.EventDonorRegistered))
}

func TestRegisterDonorDistinctErrorCodes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RegisterDonor(ctx, "donor-1")
	require.NoError(t, err)

	// Re-registering reports a conflict...
	_, err = svc.RegisterDonor(ctx, "donor-1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	// ...while resolving an unknown address reports not-found. The two
	// codes must never be conflated.
	_, err = svc.ResolveDonor(ctx, "never-seen")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRegisterValidatesAddress(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.RegisterDonor(context.Background(), "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.RegisterCampaign(context.Background(), "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCampaignRegistryIsIndependent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// The same external address may act as donor and campaign; each
	// registry tracks it independently.
	donor, err := svc.RegisterDonor(ctx, "acct-1")
	require.NoError(t, err)
	campaign, err := svc.RegisterCampaign(ctx, "acct-1")
	require.NoError(t, err)

	assert.EqualValues(t, 1, donor.ID)
	assert.EqualValues(t, 1, campaign.ID)

	addr, err := svc.CampaignAddress(ctx, campaign.ID)
	require.NoError(t, err)
	assert.EqualValues(t, "acct-1", addr)
}
