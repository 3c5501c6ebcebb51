// Package service implements the append-only donation ledger. Every
// accepted donation lands here last, after the quota and campaign checks,
// so the ledger is the system's source of record for what actually
// happened.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/ledger/metrics"
	"tally/internal/ledger/models"
	"tally/internal/ledger/ports"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/audit"
	"tally/pkg/platform/sentinel"
	"tally/pkg/requestcontext"
)

const (
	outcomeLogged           = "logged"
	outcomeCapacityExceeded = "capacity_exceeded"
	outcomeRejected         = "rejected"
)

// Service wraps the ledger store with validation, coded errors and audit.
type Service struct {
	store          ports.Store
	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
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

// New constructs the ledger service.
func New(store ports.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("ledger store is required")
	}
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Log appends one donation. Ids are assigned gapless from 0; a full donor
// or campaign list rejects the whole append with CodeCapacityExceeded and
// writes nothing.
func (s *Service) Log(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, amount int64) (domain.DonationID, error) {
	if donor.IsZero() {
		s.observeAppend(outcomeRejected)
		return 0, dErrors.New(dErrors.CodeValidation, "donor id is required")
	}
	if campaign.IsZero() {
		s.observeAppend(outcomeRejected)
		return 0, dErrors.New(dErrors.CodeValidation, "campaign id is required")
	}
	if amount <= 0 {
		s.observeAppend(outcomeRejected)
		return 0, dErrors.New(dErrors.CodeValidation, "donation amount must be positive")
	}
	tick, _ := requestcontext.Tick(ctx)

	id, err := s.store.Append(ctx, donor, campaign, amount, tick)
	if err != nil {
		if errors.Is(err, sentinel.ErrCapacity) {
			s.observeAppend(outcomeCapacityExceeded)
			return 0, dErrors.Newf(dErrors.CodeCapacityExceeded,
				"donation list is full (%d entries)", models.MaxListEntries)
		}
		s.observeAppend(outcomeRejected)
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append donation")
	}

	s.observeAppend(outcomeLogged)
	if s.metrics != nil {
		s.metrics.LoggedAmount.Add(float64(amount))
		s.metrics.DonationCount.Inc()
	}
	s.emit(ctx, audit.Event{
		Category: audit.EventDonationLogged.Category(),
		Action:   string(audit.EventDonationLogged),
		Tick:     tick,
		Donor:    donor,
		Campaign: campaign,
		Donation: id,
		Amount:   amount,
	})
	return id, nil
}

// DonationsByDonor returns slice[start, start+limit) of the donor's list.
func (s *Service) DonationsByDonor(ctx context.Context, donor domain.DonorID, start, limit int) (*models.DonorPage, error) {
	if err := validatePage(start, limit); err != nil {
		return nil, err
	}
	items, total, err := s.store.DonationsByDonor(ctx, donor, start, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read donor donations")
	}
	return &models.DonorPage{
		Items:   items,
		Total:   total,
		HasMore: total > start+limit,
	}, nil
}

// DonationsByCampaign returns slice[start, start+limit) of the campaign's list.
func (s *Service) DonationsByCampaign(ctx context.Context, campaign domain.CampaignID, start, limit int) (*models.CampaignPage, error) {
	if err := validatePage(start, limit); err != nil {
		return nil, err
	}
	items, total, err := s.store.DonationsByCampaign(ctx, campaign, start, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read campaign donations")
	}
	return &models.CampaignPage{
		Items:   items,
		Total:   total,
		HasMore: total > start+limit,
	}, nil
}

// Detail returns the flat record for a donation id.
func (s *Service) Detail(ctx context.Context, id domain.DonationID) (*models.DonationDetail, error) {
	detail, err := s.store.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "donation %d does not exist", uint64(id))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read donation detail")
	}
	return detail, nil
}

// TotalByDonor sums a donor's logged donations.
func (s *Service) TotalByDonor(ctx context.Context, donor domain.DonorID) (int64, error) {
	total, err := s.store.TotalByDonor(ctx, donor)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum donor donations")
	}
	return total, nil
}

// TotalByCampaign sums a campaign's logged donations.
func (s *Service) TotalByCampaign(ctx context.Context, campaign domain.CampaignID) (int64, error) {
	total, err := s.store.TotalByCampaign(ctx, campaign)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum campaign donations")
	}
	return total, nil
}

// CountByDonor reports the donor's list length.
func (s *Service) CountByDonor(ctx context.Context, donor domain.DonorID) (int, error) {
	count, err := s.store.CountByDonor(ctx, donor)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count donor donations")
	}
	return count, nil
}

// CountByCampaign reports the campaign's list length.
func (s *Service) CountByCampaign(ctx context.Context, campaign domain.CampaignID) (int, error) {
	count, err := s.store.CountByCampaign(ctx, campaign)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count campaign donations")
	}
	return count, nil
}

// Stats reports the global donation counter and the latest assigned id.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read ledger stats")
	}
	return stats, nil
}

func validatePage(start, limit int) error {
	if start < 0 {
		return dErrors.New(dErrors.CodeValidation, "start must be non-negative")
	}
	if limit <= 0 {
		return dErrors.New(dErrors.CodeValidation, "limit must be positive")
	}
	if limit > models.MaxPageLimit {
		return dErrors.Newf(dErrors.CodeQueryLimitExceeded,
			"limit %d exceeds the maximum page size of %d", limit, models.MaxPageLimit)
	}
	return nil
}

func (s *Service) observeAppend(outcome string) {
	if s.metrics != nil {
		s.metrics.AppendsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"donation_id", uint64(event.Donation),
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
