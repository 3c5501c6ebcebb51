// Package service implements the unified identity registry. The enforcer
// and the campaign state machine share this one registry, so donor and
// campaign id spaces can never diverge between them.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/registry/models"
	"tally/internal/registry/ports"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/audit"
	"tally/pkg/platform/sentinel"
	"tally/pkg/requestcontext"
)

// AuditPublisher emits audit events for registrations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service wraps the registry store with validation, coded errors and audit.
type Service struct {
	store          ports.Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// New constructs the registry service.
func New(store ports.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("registry store is required")
	}
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// RegisterDonor assigns the next sequential donor id to an unseen address.
func (s *Service) RegisterDonor(ctx context.Context, addr domain.Address) (*models.DonorIdentity, error) {
	if addr.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "donor address is required")
	}
	tick, _ := requestcontext.Tick(ctx)
	identity, err := s.store.CreateDonor(ctx, addr, tick)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "donor address already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register donor")
	}

	s.emit(ctx, audit.Event{
		Category: audit.EventDonorRegistered.Category(),
		Action:   string(audit.EventDonorRegistered),
		Tick:     tick,
		Donor:    identity.ID,
		Actor:    addr,
	})
	return identity, nil
}

// RegisterCampaign assigns the next sequential campaign id to an unseen address.
func (s *Service) RegisterCampaign(ctx context.Context, addr domain.Address) (*models.CampaignIdentity, error) {
	if addr.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "campaign address is required")
	}
	tick, _ := requestcontext.Tick(ctx)
	identity, err := s.store.CreateCampaign(ctx, addr, tick)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "campaign address already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register campaign")
	}

	s.emit(ctx, audit.Event{
		Category: audit.EventCampaignRegistered.Category(),
		Action:   string(audit.EventCampaignRegistered),
		Tick:     tick,
		Campaign: identity.ID,
		Actor:    addr,
	})
	return identity, nil
}

// ResolveDonor maps an address to its donor id. Unknown addresses fail with
// CodeNotFound, deliberately distinct from the already-registered conflict.
func (s *Service) ResolveDonor(ctx context.Context, addr domain.Address) (domain.DonorID, error) {
	identity, err := s.store.DonorByAddress(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "donor is not registered")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve donor")
	}
	return identity.ID, nil
}

// ResolveCampaign maps an address to its campaign id.
func (s *Service) ResolveCampaign(ctx context.Context, addr domain.Address) (domain.CampaignID, error) {
	identity, err := s.store.CampaignByAddress(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "campaign is not registered")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve campaign")
	}
	return identity.ID, nil
}

// DonorAddress maps a donor id back to its external address.
func (s *Service) DonorAddress(ctx context.Context, id domain.DonorID) (domain.Address, error) {
	identity, err := s.store.DonorByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "donor is not registered")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up donor")
	}
	return identity.Address, nil
}

// CampaignAddress maps a campaign id back to its external address.
func (s *Service) CampaignAddress(ctx context.Context, id domain.CampaignID) (domain.Address, error) {
	identity, err := s.store.CampaignByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "campaign is not registered")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up campaign")
	}
	return identity.Address, nil
}

// Counts reports how many donors and campaigns are registered.
func (s *Service) Counts(ctx context.Context) (models.Counts, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return models.Counts{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count identities")
	}
	return counts, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"donor_id", uint64(event.Donor),
			"campaign_id", uint64(event.Campaign),
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
