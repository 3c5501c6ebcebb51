package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	campaignstore "tally/internal/campaign/store"
	enforcersvc "tally/internal/enforcer/service"
	cyclestore "tally/internal/enforcer/store/cycle"
	ledgersvc "tally/internal/ledger/service"
	ledgerstore "tally/internal/ledger/store"
	registrysvc "tally/internal/registry/service"
	registrystore "tally/internal/registry/store"
	"tally/internal/treasury"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/requestcontext"
)

// fixture wires real in-memory collaborators so donate exercises the whole
// chain the way the process does.
type fixture struct {
	svc      *Service
	treasury *treasury.Treasury
	enforcer *enforcersvc.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry, err := registrysvc.New(registrystore.NewMemory())
	require.NoError(t, err)
	enforcer, err := enforcersvc.New(cyclestore.NewMemory(), registry, 1_000_000_000, 100)
	require.NoError(t, err)
	ledger, err := ledgersvc.New(ledgerstore.NewMemory())
	require.NoError(t, err)
	funds := treasury.New()

	svc, err := New(campaignstore.NewMemory(), enforcer, ledger, funds, registry)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = registry.RegisterDonor(ctx, "alice")
	require.NoError(t, err)
	_, err = registry.RegisterDonor(ctx, "bob")
	require.NoError(t, err)
	_, err = registry.RegisterCampaign(ctx, "mayor-race")
	require.NoError(t, err)

	require.NoError(t, funds.Deposit(ctx, "alice", 100_000))
	require.NoError(t, funds.Deposit(ctx, "bob", 100_000))

	return &fixture{svc: svc, treasury: funds, enforcer: enforcer}
}

func (f *fixture) initialize(t *testing.T, maxPerDonation, totalCap int64, duration uint64) {
	t.Helper()
	_, err := f.svc.Initialize(ctxAt(0), "mayor-race", "carol", maxPerDonation, totalCap, duration)
	require.NoError(t, err)
}

func ctxAt(tick domain.Tick) context.Context {
	return requestcontext.WithTick(context.Background(), tick)
}

func donorCtx(addr domain.Address, tick domain.Tick) context.Context {
	return requestcontext.WithCaller(ctxAt(tick), addr)
}

func TestInitializeValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Initialize(ctxAt(0), "mayor-race", "carol", 0, 100, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = f.svc.Initialize(ctxAt(0), "mayor-race", "carol", 100, 0, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = f.svc.Initialize(ctxAt(0), "mayor-race", "carol", 100, 100, 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = f.svc.Initialize(ctxAt(0), "mayor-race", "mayor-race", 100, 100, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidRecipient))

	_, err = f.svc.Initialize(ctxAt(0), "unregistered", "carol", 100, 100, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestInitializeOnce(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)

	_, err := f.svc.Initialize(ctxAt(5), "mayor-race", "carol", 1000, 10000, 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestDonateLifecycle(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)
	ctx := context.Background()

	_, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 1500)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	id, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 500)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationID(0), id)

	balance, err := f.svc.Balance(ctx, "mayor-race")
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	contribution, err := f.svc.Contribution(ctx, "mayor-race", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(500), contribution)

	total, err := f.svc.TotalDonations(ctx, "mayor-race")
	require.NoError(t, err)
	assert.Equal(t, int64(500), total)

	aliceBalance, err := f.treasury.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(99_500), aliceBalance)

	_, err = f.svc.Donate(donorCtx("alice", 101), "mayor-race", 500)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCampaignExpired))
}

func TestDonateEnforcesTotalCap(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 1500, 100)

	_, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 1000)
	require.NoError(t, err)

	_, err = f.svc.Donate(donorCtx("bob", 1), "mayor-race", 1000)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeLimitExceeded))

	_, err = f.svc.Donate(donorCtx("bob", 1), "mayor-race", 500)
	assert.NoError(t, err)
}

func TestDonatePropagatesQuotaFailure(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 2000, 1_000_000, 100)
	require.NoError(t, f.enforcer.SetAdmin(context.Background(), "root"))
	require.NoError(t, f.enforcer.SetGlobalLimit(requestcontext.WithCaller(context.Background(), "root"), 1000))

	_, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 800)
	require.NoError(t, err)

	// The quota failure surfaces verbatim and nothing moves.
	_, err = f.svc.Donate(donorCtx("alice", 1), "mayor-race", 800)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeQuotaExceeded))

	balance, err := f.svc.Balance(context.Background(), "mayor-race")
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance)
}

func TestDonateRequiresRegisteredDonor(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)

	_, err := f.svc.Donate(donorCtx("stranger", 0), "mayor-race", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = f.svc.Donate(ctxAt(0), "mayor-race", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestDonateInactiveStates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCampaignInactive))

	f.initialize(t, 1000, 10000, 100)
	ownerCtx := requestcontext.WithCaller(ctxAt(1), "carol")
	require.NoError(t, f.svc.SetStatus(ownerCtx, "mayor-race", false))

	_, err = f.svc.Donate(donorCtx("alice", 1), "mayor-race", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCampaignInactive))

	require.NoError(t, f.svc.SetStatus(ownerCtx, "mayor-race", true))
	_, err = f.svc.Donate(donorCtx("alice", 1), "mayor-race", 100)
	assert.NoError(t, err)
}

func TestSetStatusOwnerOnly(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)

	err := f.svc.SetStatus(requestcontext.WithCaller(ctxAt(0), "alice"), "mayor-race", false)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestIsActiveWindow(t *testing.T) {
	f := newFixture(t)

	// Initialized at tick 10 with duration 100: active in [10, 110].
	_, err := f.svc.Initialize(ctxAt(10), "mayor-race", "carol", 1000, 10000, 100)
	require.NoError(t, err)

	active, err := f.svc.IsActive(ctxAt(10), "mayor-race")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = f.svc.IsActive(ctxAt(110), "mayor-race")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = f.svc.IsActive(ctxAt(111), "mayor-race")
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, f.svc.SetStatus(requestcontext.WithCaller(ctxAt(20), "carol"), "mayor-race", false))
	active, err = f.svc.IsActive(ctxAt(20), "mayor-race")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestWithdrawLifecycle(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)

	_, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 1000)
	require.NoError(t, err)

	ownerCtx := requestcontext.WithCaller(ctxAt(5), "carol")

	_, err = f.svc.Withdraw(requestcontext.WithCaller(ctxAt(5), "alice"), "mayor-race", "vendor", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = f.svc.Withdraw(ownerCtx, "mayor-race", "vendor", 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = f.svc.Withdraw(ownerCtx, "mayor-race", "vendor", 5000)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientBalance))

	_, err = f.svc.Withdraw(ownerCtx, "mayor-race", "mayor-race", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidRecipient))

	withdrawal, err := f.svc.Withdraw(ownerCtx, "mayor-race", "vendor", 400)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), withdrawal.Sequence)
	assert.Equal(t, domain.Tick(5), withdrawal.Tick)

	// Repeat payouts get distinct sequence keys.
	withdrawal, err = f.svc.Withdraw(ownerCtx, "mayor-race", "vendor", 400)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), withdrawal.Sequence)

	got, err := f.svc.WithdrawalBySequence(context.Background(), "mayor-race", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(400), got.Amount)

	_, err = f.svc.WithdrawalBySequence(context.Background(), "mayor-race", 5)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	history, err := f.svc.Withdrawals(context.Background(), "mayor-race")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, uint64(0), history[0].Sequence)
	assert.Equal(t, uint64(1), history[1].Sequence)

	vendorBalance, err := f.treasury.Balance(context.Background(), "vendor")
	require.NoError(t, err)
	assert.Equal(t, int64(800), vendorBalance)

	balance, err := f.svc.Balance(context.Background(), "mayor-race")
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)
}

func TestWithdrawInactiveCampaign(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)
	ownerCtx := requestcontext.WithCaller(ctxAt(5), "carol")

	require.NoError(t, f.svc.SetStatus(ownerCtx, "mayor-race", false))
	_, err := f.svc.Withdraw(ownerCtx, "mayor-race", "vendor", 100)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCampaignInactive))
}

func TestRunningTotalMatchesContributions(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1000, 10000, 100)
	ctx := context.Background()

	_, err := f.svc.Donate(donorCtx("alice", 0), "mayor-race", 300)
	require.NoError(t, err)
	_, err = f.svc.Donate(donorCtx("bob", 1), "mayor-race", 200)
	require.NoError(t, err)
	_, err = f.svc.Donate(donorCtx("alice", 2), "mayor-race", 100)
	require.NoError(t, err)

	alice, err := f.svc.Contribution(ctx, "mayor-race", "alice")
	require.NoError(t, err)
	bob, err := f.svc.Contribution(ctx, "mayor-race", "bob")
	require.NoError(t, err)
	total, err := f.svc.TotalDonations(ctx, "mayor-race")
	require.NoError(t, err)
	assert.Equal(t, total, alice+bob)
	assert.Equal(t, int64(600), total)
}
