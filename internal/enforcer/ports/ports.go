// Package ports defines shared interfaces for the enforcer module.
package ports

import (
	"context"

	"tally/pkg/domain"
	"tally/pkg/platform/audit"
)

// AuditPublisher emits audit events for compliance-relevant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Registry resolves external addresses to the shared sequential ids. The
// enforcer and the campaign module use the same registry instance so their
// id spaces cannot diverge.
type Registry interface {
	ResolveDonor(ctx context.Context, addr domain.Address) (domain.DonorID, error)
	ResolveCampaign(ctx context.Context, addr domain.Address) (domain.CampaignID, error)
}

// CycleStore persists per-cycle donation totals, keyed by (id, cycle).
// Records are created lazily on first use and never deleted.
type CycleStore interface {
	// DonorTotal returns the donor's recorded total for a cycle; zero when
	// no record exists yet.
	DonorTotal(ctx context.Context, donor domain.DonorID, cycle uint64) (int64, error)

	// CampaignTotal returns the campaign's received total for a cycle.
	CampaignTotal(ctx context.Context, campaign domain.CampaignID, cycle uint64) (int64, error)

	// Record increments the donor and campaign totals for a cycle as one
	// atomic mutation.
	Record(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, cycle uint64, amount int64) error

	// Release undoes a prior Record with the same arguments. Implementations
	// return sentinel.ErrInvalidState when the release would drive a total
	// negative.
	Release(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, cycle uint64, amount int64) error

	// CycleStats counts the donor and campaign records of a cycle.
	CycleStats(ctx context.Context, cycle uint64) (donorRecords, campaignRecords int, err error)
}
