// Package service implements the campaign contribution state machine.
//
// A donation is an orchestrated saga across four collaborators: the quota
// enforcer gates it, the treasury moves the value, the campaign record
// absorbs the totals and the ledger writes the permanent record. The first
// failing step's error propagates verbatim and every earlier step is
// compensated in reverse order, so a donation either fully happens or
// leaves no trace.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tally/internal/campaign/metrics"
	"tally/internal/campaign/models"
	"tally/internal/campaign/ports"
	enforcerModels "tally/internal/enforcer/models"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/audit"
	"tally/pkg/platform/sentinel"
	"tally/pkg/requestcontext"
)

const (
	outcomeAccepted   = "accepted"
	outcomeRejected   = "rejected"
	outcomeRolledBack = "rolled_back"

	stepTransfer = "transfer"
	stepApply    = "apply"
	stepLedger   = "ledger"
)

// Service orchestrates campaign operations. Collaborator bindings are fixed
// at construction and never change for the life of the instance.
type Service struct {
	store          ports.Store
	enforcer       ports.Enforcer
	ledger         ports.Ledger
	treasury       ports.Treasury
	registry       ports.Registry
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer

	// mu serializes donations and withdrawals so the cap check and the saga
	// commit as one unit per campaign instance.
	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the campaign service with its permanent bindings.
func New(store ports.Store, enforcer ports.Enforcer, ledger ports.Ledger, treasury ports.Treasury, registry ports.Registry, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("campaign store is required")
	}
	if enforcer == nil {
		return nil, fmt.Errorf("enforcer binding is required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger binding is required")
	}
	if treasury == nil {
		return nil, fmt.Errorf("treasury binding is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry binding is required")
	}
	svc := &Service{
		store:    store,
		enforcer: enforcer,
		ledger:   ledger,
		treasury: treasury,
		registry: registry,
		tracer:   otel.Tracer("tally/campaign"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Initialize creates the campaign record. One-time per address; the start
// tick is the current logical clock and the donation window runs from it.
func (s *Service) Initialize(ctx context.Context, addr, owner domain.Address, maxPerDonation, totalCap int64, duration uint64) (*models.Campaign, error) {
	if addr.IsZero() || owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "campaign and owner addresses are required")
	}
	if maxPerDonation <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "max per donation must be positive")
	}
	if totalCap <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "total cap must be positive")
	}
	if duration == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "duration must be positive")
	}
	if owner == addr {
		return nil, dErrors.New(dErrors.CodeInvalidRecipient, "owner must differ from the campaign holding address")
	}
	id, err := s.registry.ResolveCampaign(ctx, addr)
	if err != nil {
		return nil, err
	}
	tick, _ := requestcontext.Tick(ctx)

	campaign := &models.Campaign{
		ID:             id,
		Address:        addr,
		Owner:          owner,
		MaxPerDonation: maxPerDonation,
		TotalCap:       totalCap,
		StartTick:      tick,
		Duration:       duration,
		Active:         true,
	}
	if err := s.store.Create(ctx, campaign); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "campaign is already initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create campaign")
	}

	s.emit(ctx, audit.Event{
		Category: audit.EventCampaignInitialized.Category(),
		Action:   string(audit.EventCampaignInitialized),
		Tick:     tick,
		Campaign: id,
		Actor:    owner,
	})
	return campaign, nil
}

// Donate runs the donation saga for the authenticated caller. On success
// the returned id is the ledger's donation id.
func (s *Service) Donate(ctx context.Context, campaignAddr domain.Address, amount int64) (domain.DonationID, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	tick, _ := requestcontext.Tick(ctx)

	ctx, span := s.tracer.Start(ctx, "campaign.donate",
		trace.WithAttributes(
			attribute.String("campaign.address", string(campaignAddr)),
			attribute.Int64("donation.amount", amount),
			attribute.Int64("tick", int64(tick)),
		))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, err := s.gateDonation(ctx, campaignAddr, amount, tick)
	if err != nil {
		s.observeDonation(outcomeRejected)
		return 0, spanError(span, err)
	}

	// Step 1: quota gate. Its receipt pins the cycle the amount landed in.
	receipt, err := s.enforcer.CheckAndRecord(ctx, caller, campaignAddr, amount)
	if err != nil {
		s.observeDonation(outcomeRejected)
		return 0, spanError(span, err)
	}
	span.AddEvent("quota recorded")

	// Step 2: move the value into the campaign's holding balance.
	if err := s.treasury.Transfer(ctx, caller, campaignAddr, amount); err != nil {
		s.compensate(ctx, stepTransfer, campaign, receipt, false, false)
		return 0, spanError(span, err)
	}
	span.AddEvent("value transferred")

	// Step 3: apply the campaign's own accounting.
	if _, err := s.store.ApplyDonation(ctx, campaignAddr, receipt.Donor, amount); err != nil {
		s.compensate(ctx, stepApply, campaign, receipt, true, false)
		return 0, spanError(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply donation"))
	}

	// Step 4: permanent record. A full ledger list rolls everything back.
	donationID, err := s.ledger.Log(ctx, receipt.Donor, receipt.Campaign, amount)
	if err != nil {
		s.compensate(ctx, stepLedger, campaign, receipt, true, true)
		return 0, spanError(span, err)
	}
	span.AddEvent("donation logged")

	s.observeDonation(outcomeAccepted)
	if s.metrics != nil {
		s.metrics.DonatedAmount.Add(float64(amount))
	}
	s.emit(ctx, audit.Event{
		Category: audit.EventDonationAccepted.Category(),
		Action:   string(audit.EventDonationAccepted),
		Tick:     tick,
		Donor:    receipt.Donor,
		Campaign: receipt.Campaign,
		Donation: donationID,
		Actor:    caller,
		Amount:   amount,
	})
	return donationID, nil
}

// gateDonation runs the campaign-local checks in their documented order.
// Callers hold s.mu.
func (s *Service) gateDonation(ctx context.Context, campaignAddr domain.Address, amount int64, tick domain.Tick) (*models.Campaign, error) {
	campaign, err := s.store.Get(ctx, campaignAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeCampaignInactive, "campaign is not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load campaign")
	}
	if !campaign.Active {
		return nil, dErrors.New(dErrors.CodeCampaignInactive, "campaign is paused")
	}
	if amount <= 0 || amount > campaign.MaxPerDonation {
		return nil, dErrors.Newf(dErrors.CodeValidation,
			"donation amount must be in (0, %d]", campaign.MaxPerDonation)
	}
	if campaign.Expired(tick) {
		return nil, dErrors.New(dErrors.CodeCampaignExpired, "campaign donation window has passed")
	}
	if campaign.RunningTotal+amount > campaign.TotalCap {
		return nil, dErrors.Newf(dErrors.CodeLimitExceeded,
			"donation would exceed the campaign total cap of %d", campaign.TotalCap)
	}
	return campaign, nil
}

// compensate unwinds completed saga steps in reverse order. Compensation
// failures are logged, not returned; the original step error is what the
// caller sees.
func (s *Service) compensate(ctx context.Context, failedStep string, campaign *models.Campaign, receipt *enforcerModels.Receipt, undoTransfer, undoApply bool) {
	s.observeDonation(outcomeRolledBack)
	if s.metrics != nil {
		s.metrics.RollbacksTotal.WithLabelValues(failedStep).Inc()
	}

	if undoApply {
		if err := s.store.RevertDonation(ctx, campaign.Address, receipt.Donor, receipt.Amount); err != nil {
			s.logError(ctx, "failed to revert campaign totals", err)
		}
	}
	if undoTransfer {
		if err := s.treasury.Transfer(ctx, campaign.Address, s.donorAddress(ctx, receipt.Donor), receipt.Amount); err != nil {
			s.logError(ctx, "failed to return donation value", err)
		}
	}
	if err := s.enforcer.Release(ctx, *receipt); err != nil {
		s.logError(ctx, "failed to release quota", err)
	}

	tick, _ := requestcontext.Tick(ctx)
	s.emit(ctx, audit.Event{
		Category: audit.EventDonationRolledBack.Category(),
		Action:   string(audit.EventDonationRolledBack),
		Tick:     tick,
		Donor:    receipt.Donor,
		Campaign: receipt.Campaign,
		Amount:   receipt.Amount,
		Reason:   "step " + failedStep + " failed",
	})
}

// donorAddress recovers the transfer counterparty during compensation. The
// caller is still on the context; fall back to it if present.
func (s *Service) donorAddress(ctx context.Context, donor domain.DonorID) domain.Address {
	if caller := requestcontext.Caller(ctx); !caller.IsZero() {
		return caller
	}
	// Unreachable in practice: Donate rejects anonymous callers up front.
	s.logError(ctx, "compensating transfer without caller identity", fmt.Errorf("donor id %d", uint64(donor)))
	return ""
}

// Withdraw pays out from the campaign's held balance. Owner only. The
// recorded withdrawal is keyed by a per-campaign monotonic sequence.
func (s *Service) Withdraw(ctx context.Context, campaignAddr, recipient domain.Address, amount int64) (*models.Withdrawal, error) {
	caller := requestcontext.Caller(ctx)
	tick, _ := requestcontext.Tick(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, err := s.store.Get(ctx, campaignAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeCampaignInactive, "campaign is not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load campaign")
	}
	if caller != campaign.Owner {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the campaign owner may withdraw")
	}
	if !campaign.Active {
		return nil, dErrors.New(dErrors.CodeCampaignInactive, "campaign is paused")
	}
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "withdrawal amount must be positive")
	}
	balance, err := s.treasury.Balance(ctx, campaignAddr)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read campaign balance")
	}
	if amount > balance {
		return nil, dErrors.Newf(dErrors.CodeInsufficientBalance,
			"withdrawal of %d exceeds held balance of %d", amount, balance)
	}
	if recipient.IsZero() || recipient == campaignAddr {
		return nil, dErrors.New(dErrors.CodeInvalidRecipient, "recipient must be an external address")
	}
	if err := s.enforcer.AuthorizeWithdrawal(ctx, campaignAddr); err != nil {
		return nil, err
	}

	if err := s.treasury.Transfer(ctx, campaignAddr, recipient, amount); err != nil {
		return nil, err
	}
	withdrawal, err := s.store.AppendWithdrawal(ctx, campaignAddr, recipient, amount, tick)
	if err != nil {
		// The value already moved; surface the bookkeeping failure loudly.
		s.logError(ctx, "withdrawal transferred but not recorded", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record withdrawal")
	}

	if s.metrics != nil {
		s.metrics.WithdrawalsTotal.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.EventWithdrawalRecorded.Category(),
		Action:   string(audit.EventWithdrawalRecorded),
		Tick:     tick,
		Campaign: campaign.ID,
		Actor:    caller,
		Amount:   amount,
		Reason:   "paid to " + string(recipient),
	})
	return withdrawal, nil
}

// SetStatus toggles the active flag. Owner only; a paused campaign can
// always be resumed, there is no terminal state.
func (s *Service) SetStatus(ctx context.Context, campaignAddr domain.Address, active bool) error {
	caller := requestcontext.Caller(ctx)

	campaign, err := s.store.Get(ctx, campaignAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "campaign is not initialized")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load campaign")
	}
	if caller != campaign.Owner {
		return dErrors.New(dErrors.CodeUnauthorized, "only the campaign owner may change status")
	}
	if err := s.store.SetActive(ctx, campaignAddr, active); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update status")
	}

	event := audit.EventCampaignPaused
	if active {
		event = audit.EventCampaignResumed
	}
	tick, _ := requestcontext.Tick(ctx)
	s.emit(ctx, audit.Event{
		Category: event.Category(),
		Action:   string(event),
		Tick:     tick,
		Campaign: campaign.ID,
		Actor:    caller,
	})
	return nil
}

// Balance reads the campaign's held balance from the treasury.
func (s *Service) Balance(ctx context.Context, campaignAddr domain.Address) (int64, error) {
	if _, err := s.Config(ctx, campaignAddr); err != nil {
		return 0, err
	}
	balance, err := s.treasury.Balance(ctx, campaignAddr)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read campaign balance")
	}
	return balance, nil
}

// TotalDonations reports the campaign's running donation total.
func (s *Service) TotalDonations(ctx context.Context, campaignAddr domain.Address) (int64, error) {
	campaign, err := s.Config(ctx, campaignAddr)
	if err != nil {
		return 0, err
	}
	return campaign.RunningTotal, nil
}

// Config returns a snapshot of the campaign record.
func (s *Service) Config(ctx context.Context, campaignAddr domain.Address) (*models.Campaign, error) {
	campaign, err := s.store.Get(ctx, campaignAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "campaign is not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load campaign")
	}
	return campaign, nil
}

// Contribution reports one donor's running contribution to the campaign.
func (s *Service) Contribution(ctx context.Context, campaignAddr, donorAddr domain.Address) (int64, error) {
	donor, err := s.registry.ResolveDonor(ctx, donorAddr)
	if err != nil {
		return 0, err
	}
	contribution, err := s.store.Contribution(ctx, campaignAddr, donor)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "campaign is not initialized")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read contribution")
	}
	return contribution, nil
}

// WithdrawalBySequence returns one recorded withdrawal.
func (s *Service) WithdrawalBySequence(ctx context.Context, campaignAddr domain.Address, sequence uint64) (*models.Withdrawal, error) {
	withdrawal, err := s.store.WithdrawalBySequence(ctx, campaignAddr, sequence)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no withdrawal with sequence %d", sequence)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read withdrawal")
	}
	return withdrawal, nil
}

// Withdrawals returns the campaign's withdrawal history in sequence order.
func (s *Service) Withdrawals(ctx context.Context, campaignAddr domain.Address) ([]models.Withdrawal, error) {
	withdrawals, err := s.store.Withdrawals(ctx, campaignAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "campaign is not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read withdrawals")
	}
	return withdrawals, nil
}

// IsActive reports whether the campaign accepts donations right now: the
// flag is set and the tick falls inside the donation window.
func (s *Service) IsActive(ctx context.Context, campaignAddr domain.Address) (bool, error) {
	campaign, err := s.Config(ctx, campaignAddr)
	if err != nil {
		return false, err
	}
	tick, _ := requestcontext.Tick(ctx)
	return campaign.Active && campaign.InWindow(tick), nil
}

func (s *Service) observeDonation(outcome string) {
	if s.metrics != nil {
		s.metrics.DonationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) logError(ctx context.Context, msg string, err error) {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, msg, "error", err)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"campaign_id", uint64(event.Campaign),
			"donor_id", uint64(event.Donor),
			"amount", event.Amount,
			"actor", string(event.Actor),
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
