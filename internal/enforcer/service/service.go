// Package service implements the cycle-based donation quota enforcer.
//
// The enforcer caps how much any single donor may give, across all
// campaigns, within one compliance cycle. Cycles are windows on the host's
// logical clock; the enforcer advances lazily when a check observes that
// the current window has elapsed. Per-cycle totals live in a CycleStore so
// closed cycles stay queryable for reporting.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tally/internal/enforcer/metrics"
	"tally/internal/enforcer/models"
	"tally/internal/enforcer/ports"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/audit"
	"tally/pkg/platform/sentinel"
	"tally/pkg/requestcontext"
)

const (
	outcomeAccepted      = "accepted"
	outcomeQuotaExceeded = "quota_exceeded"
	outcomeRejected      = "rejected"
)

// Service holds one enforcer instance's configuration and serializes quota
// decisions. Admin, limit and cycle position are instance state, not
// process-global, so several enforcers can coexist in one process.
type Service struct {
	store          ports.CycleStore
	registry       ports.Registry
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics

	// mu guards the fields below and spans the whole check-and-record
	// decision so the limit comparison and the store increment cannot
	// interleave within this instance.
	mu            sync.Mutex
	admin         domain.Address
	globalLimit   int64
	cycleDuration uint64
	currentCycle  uint64
	cycleStarts   map[uint64]domain.Tick
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

// New constructs an enforcer with the given initial global limit and cycle
// duration. Cycle 0 starts at tick 0.
func New(store ports.CycleStore, registry ports.Registry, globalLimit int64, cycleDuration uint64, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cycle store is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if globalLimit <= 0 {
		return nil, fmt.Errorf("global limit must be positive, got %d", globalLimit)
	}
	if cycleDuration == 0 {
		return nil, fmt.Errorf("cycle duration must be positive")
	}
	svc := &Service{
		store:         store,
		registry:      registry,
		globalLimit:   globalLimit,
		cycleDuration: cycleDuration,
		cycleStarts:   map[uint64]domain.Tick{0: 0},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// SetAdmin claims the admin role for this instance. First caller wins;
// later attempts fail with CodeConflict regardless of candidate.
func (s *Service) SetAdmin(ctx context.Context, candidate domain.Address) error {
	if candidate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "admin address is required")
	}
	s.mu.Lock()
	if !s.admin.IsZero() {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeConflict, "admin is already set")
	}
	s.admin = candidate
	s.mu.Unlock()

	s.emit(ctx, audit.Event{
		Category: audit.EventAdminSet.Category(),
		Action:   string(audit.EventAdminSet),
		Actor:    candidate,
	})
	return nil
}

// UpdateAdmin transfers the admin role. Only the current admin may call it;
// when no admin exists yet the caller gets CodeNotFound, deliberately
// distinct from the unauthorized case.
func (s *Service) UpdateAdmin(ctx context.Context, next domain.Address) error {
	if next.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "admin address is required")
	}
	caller := requestcontext.Caller(ctx)

	s.mu.Lock()
	if s.admin.IsZero() {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeNotFound, "no admin is set")
	}
	if caller != s.admin {
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeUnauthorized, "only the admin may transfer the admin role")
	}
	s.admin = next
	s.mu.Unlock()

	s.emit(ctx, audit.Event{
		Category: audit.EventAdminTransferred.Category(),
		Action:   string(audit.EventAdminTransferred),
		Actor:    caller,
		Reason:   "transferred to " + string(next),
	})
	return nil
}

// SetGlobalLimit replaces the per-donor per-cycle cap. Admin only. The new
// limit applies to checks from now on; totals already recorded are not
// revisited.
func (s *Service) SetGlobalLimit(ctx context.Context, limit int64) error {
	if limit <= 0 {
		return dErrors.New(dErrors.CodeValidation, "global limit must be positive")
	}
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.globalLimit = limit
	s.mu.Unlock()

	s.emit(ctx, audit.Event{
		Category: audit.EventGlobalLimitUpdated.Category(),
		Action:   string(audit.EventGlobalLimitUpdated),
		Actor:    requestcontext.Caller(ctx),
		Amount:   limit,
	})
	return nil
}

// SetCycleDuration replaces the cycle window length in ticks. Admin only.
// The running cycle keeps its start; the new duration decides when it ends.
func (s *Service) SetCycleDuration(ctx context.Context, ticks uint64) error {
	if ticks == 0 {
		return dErrors.New(dErrors.CodeValidation, "cycle duration must be positive")
	}
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.cycleDuration = ticks
	s.mu.Unlock()

	s.emit(ctx, audit.Event{
		Category: audit.EventCycleDurationUpdate.Category(),
		Action:   string(audit.EventCycleDurationUpdate),
		Actor:    requestcontext.Caller(ctx),
		Amount:   int64(ticks),
	})
	return nil
}

// CheckAndRecord enforces the per-donor cycle cap for a donation and, when
// allowed, records the amount against both the donor's and the campaign's
// totals for the current cycle. The returned receipt pins the cycle that
// absorbed the amount so a compensating Release hits the same cycle even if
// the boundary passes in between.
func (s *Service) CheckAndRecord(ctx context.Context, donorAddr, campaignAddr domain.Address, amount int64) (*models.Receipt, error) {
	if amount <= 0 {
		s.observeCheck(outcomeRejected)
		return nil, dErrors.New(dErrors.CodeValidation, "donation amount must be positive")
	}
	donor, err := s.registry.ResolveDonor(ctx, donorAddr)
	if err != nil {
		s.observeCheck(outcomeRejected)
		return nil, err
	}
	campaign, err := s.registry.ResolveCampaign(ctx, campaignAddr)
	if err != nil {
		s.observeCheck(outcomeRejected)
		return nil, err
	}
	tick, _ := requestcontext.Tick(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.advanceCycleIfDue(ctx, tick)
	cycle := s.currentCycle
	limit := s.globalLimit

	total, err := s.store.DonorTotal(ctx, donor, cycle)
	if err != nil {
		s.observeCheck(outcomeRejected)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read donor cycle total")
	}
	if total+amount > limit {
		s.observeCheck(outcomeQuotaExceeded)
		s.emit(ctx, audit.Event{
			Category: audit.EventQuotaExceeded.Category(),
			Action:   string(audit.EventQuotaExceeded),
			Tick:     tick,
			Donor:    donor,
			Campaign: campaign,
			Amount:   amount,
			Reason:   fmt.Sprintf("cycle %d total %d + %d exceeds limit %d", cycle, total, amount, limit),
		})
		return nil, dErrors.Newf(dErrors.CodeQuotaExceeded,
			"donation of %d would exceed the per-cycle limit of %d", amount, limit)
	}
	if err := s.store.Record(ctx, donor, campaign, cycle, amount); err != nil {
		s.observeCheck(outcomeRejected)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record cycle totals")
	}

	s.observeCheck(outcomeAccepted)
	if s.metrics != nil {
		s.metrics.RecordedAmount.Add(float64(amount))
	}
	s.emit(ctx, audit.Event{
		Category: audit.EventQuotaRecorded.Category(),
		Action:   string(audit.EventQuotaRecorded),
		Tick:     tick,
		Donor:    donor,
		Campaign: campaign,
		Amount:   amount,
	})
	return &models.Receipt{
		Donor:      donor,
		Campaign:   campaign,
		Cycle:      cycle,
		Amount:     amount,
		DonorTotal: total + amount,
	}, nil
}

// Release undoes a prior CheckAndRecord. It exists for the donate saga: when
// a later step fails, the saga releases exactly what the receipt recorded,
// against the receipt's cycle.
func (s *Service) Release(ctx context.Context, receipt models.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Release(ctx, receipt.Donor, receipt.Campaign, receipt.Cycle, receipt.Amount); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.New(dErrors.CodeInvariantViolation, "release exceeds recorded cycle totals")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to release cycle totals")
	}
	if s.metrics != nil {
		s.metrics.ReleasesTotal.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.EventQuotaReleased.Category(),
		Action:   string(audit.EventQuotaReleased),
		Donor:    receipt.Donor,
		Campaign: receipt.Campaign,
		Amount:   receipt.Amount,
	})
	return nil
}

// AuthorizeWithdrawal verifies that the withdrawing campaign is registered.
// The quota ledger places no further constraint on withdrawals; the campaign
// module enforces balance and state.
func (s *Service) AuthorizeWithdrawal(ctx context.Context, campaignAddr domain.Address) error {
	_, err := s.registry.ResolveCampaign(ctx, campaignAddr)
	return err
}

// ForceAdvanceCycle closes the current cycle immediately. Admin only. The
// next cycle starts where the current window would have ended, so the
// regular lazy advance stays aligned.
func (s *Service) ForceAdvanceCycle(ctx context.Context) (uint64, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return 0, err
	}
	tick, _ := requestcontext.Tick(ctx)

	s.mu.Lock()
	s.advance()
	cycle := s.currentCycle
	s.mu.Unlock()

	s.emit(ctx, audit.Event{
		Category: audit.EventCycleAdvanced.Category(),
		Action:   string(audit.EventCycleAdvanced),
		Tick:     tick,
		Actor:    requestcontext.Caller(ctx),
		Reason:   fmt.Sprintf("forced advance to cycle %d", cycle),
	})
	return cycle, nil
}

// ClosedCycleStats reports record counts for a fully closed cycle. A cycle
// is closed once a later cycle has begun and the closed cycle's window has
// elapsed on the clock; until then the call fails with CodeCycleNotClosed.
func (s *Service) ClosedCycleStats(ctx context.Context, index uint64) (*models.CycleStats, error) {
	tick, _ := requestcontext.Tick(ctx)

	s.mu.Lock()
	closed := index < s.currentCycle
	if closed {
		// The successor's start marks the end of the queried window, even
		// when a forced advance closed it early.
		if nextStart, ok := s.cycleStarts[index+1]; !ok || tick < nextStart {
			closed = false
		}
	}
	s.mu.Unlock()

	if !closed {
		return nil, dErrors.Newf(dErrors.CodeCycleNotClosed, "cycle %d is not closed yet", index)
	}

	donorRecords, campaignRecords, err := s.store.CycleStats(ctx, index)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read cycle stats")
	}
	return &models.CycleStats{
		Cycle:           index,
		DonorRecords:    donorRecords,
		CampaignRecords: campaignRecords,
	}, nil
}

// Config returns a snapshot of the instance configuration and cycle position.
func (s *Service) Config(context.Context) models.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Config{
		Admin:         s.admin,
		GlobalLimit:   s.globalLimit,
		CycleDuration: s.cycleDuration,
		CurrentCycle:  s.currentCycle,
		CycleStart:    s.cycleStarts[s.currentCycle],
	}
}

// advanceCycleIfDue moves to the next cycle when the current window has
// elapsed. It advances at most one step per call: after a long idle stretch
// the cycle index lags the clock rather than catching up, which keeps
// advancement observable per donation. Callers hold s.mu.
func (s *Service) advanceCycleIfDue(ctx context.Context, tick domain.Tick) {
	start := s.cycleStarts[s.currentCycle]
	if uint64(tick) < uint64(start)+s.cycleDuration {
		return
	}
	s.advance()
	s.emit(ctx, audit.Event{
		Category: audit.EventCycleAdvanced.Category(),
		Action:   string(audit.EventCycleAdvanced),
		Tick:     tick,
		Reason:   fmt.Sprintf("lazy advance to cycle %d", s.currentCycle),
	})
}

// advance increments the cycle. The new cycle starts where the old window
// ended, not at the observed tick, so windows tile the clock without drift.
// Callers hold s.mu.
func (s *Service) advance() {
	nextStart := domain.Tick(uint64(s.cycleStarts[s.currentCycle]) + s.cycleDuration)
	s.currentCycle++
	s.cycleStarts[s.currentCycle] = nextStart
	if s.metrics != nil {
		s.metrics.CyclesAdvanced.Inc()
	}
}

func (s *Service) requireAdmin(ctx context.Context) error {
	caller := requestcontext.Caller(ctx)
	s.mu.Lock()
	admin := s.admin
	s.mu.Unlock()
	if admin.IsZero() {
		return dErrors.New(dErrors.CodeNotFound, "no admin is set")
	}
	if caller != admin {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the admin")
	}
	return nil
}

func (s *Service) observeCheck(outcome string) {
	if s.metrics != nil {
		s.metrics.ChecksTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"donor_id", uint64(event.Donor),
			"campaign_id", uint64(event.Campaign),
			"amount", event.Amount,
			"tick", uint64(event.Tick),
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
