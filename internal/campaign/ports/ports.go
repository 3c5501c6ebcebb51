// Package ports defines the campaign module's collaborator interfaces. The
// donate saga spans all of them; mocks generated from this package drive
// the saga tests.
package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"

	"tally/internal/campaign/models"
	enforcer "tally/internal/enforcer/models"
	"tally/pkg/domain"
	"tally/pkg/platform/audit"
)

// AuditPublisher emits audit events for campaign operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Enforcer is the quota gate the donate saga runs first and compensates
// last.
type Enforcer interface {
	CheckAndRecord(ctx context.Context, donorAddr, campaignAddr domain.Address, amount int64) (*enforcer.Receipt, error)
	Release(ctx context.Context, receipt enforcer.Receipt) error
	AuthorizeWithdrawal(ctx context.Context, campaignAddr domain.Address) error
}

// Ledger is the donation record the saga writes last.
type Ledger interface {
	Log(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, amount int64) (domain.DonationID, error)
}

// Treasury moves value between external addresses and campaign holdings.
type Treasury interface {
	Transfer(ctx context.Context, from, to domain.Address, amount int64) error
	Balance(ctx context.Context, addr domain.Address) (int64, error)
}

// Registry resolves campaign and donor addresses to their shared ids.
type Registry interface {
	ResolveDonor(ctx context.Context, addr domain.Address) (domain.DonorID, error)
	ResolveCampaign(ctx context.Context, addr domain.Address) (domain.CampaignID, error)
}

// Store persists campaign records, per-donor contributions and withdrawals.
type Store interface {
	// Create persists a new campaign record, or sentinel.ErrConflict when
	// the address already has one.
	Create(ctx context.Context, campaign *models.Campaign) error

	// Get returns the record for an address, or sentinel.ErrNotFound.
	Get(ctx context.Context, addr domain.Address) (*models.Campaign, error)

	SetActive(ctx context.Context, addr domain.Address, active bool) error

	// ApplyDonation adds the amount to the donor's contribution and the
	// running total as one mutation, returning the new running total.
	ApplyDonation(ctx context.Context, addr domain.Address, donor domain.DonorID, amount int64) (int64, error)

	// RevertDonation is the compensating inverse of ApplyDonation.
	RevertDonation(ctx context.Context, addr domain.Address, donor domain.DonorID, amount int64) error

	Contribution(ctx context.Context, addr domain.Address, donor domain.DonorID) (int64, error)

	// AppendWithdrawal assigns the next per-campaign sequence and records
	// the withdrawal.
	AppendWithdrawal(ctx context.Context, addr domain.Address, recipient domain.Address, amount int64, tick domain.Tick) (*models.Withdrawal, error)

	// WithdrawalBySequence returns one recorded withdrawal, or
	// sentinel.ErrNotFound.
	WithdrawalBySequence(ctx context.Context, addr domain.Address, sequence uint64) (*models.Withdrawal, error)

	// Withdrawals returns all recorded withdrawals in sequence order.
	Withdrawals(ctx context.Context, addr domain.Address) ([]models.Withdrawal, error)
}
