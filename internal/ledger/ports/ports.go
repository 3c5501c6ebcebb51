// Package ports defines shared interfaces for the ledger module.
package ports

import (
	"context"

	"tally/internal/ledger/models"
	"tally/pkg/domain"
	"tally/pkg/platform/audit"
)

// AuditPublisher emits audit events for appends.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Store persists the append-only donation record. Implementations assign
// donation ids gapless from 0 and enforce the per-donor and per-campaign
// list caps: Append returns sentinel.ErrCapacity when either list is full,
// without writing anything.
type Store interface {
	Append(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, amount int64, tick domain.Tick) (domain.DonationID, error)

	// DonationsByDonor returns slice[start, start+limit) of the donor's list
	// in append order, plus the list's full length.
	DonationsByDonor(ctx context.Context, donor domain.DonorID, start, limit int) ([]models.DonationEntry, int, error)

	// DonationsByCampaign is the campaign-side counterpart.
	DonationsByCampaign(ctx context.Context, campaign domain.CampaignID, start, limit int) ([]models.CampaignDonationEntry, int, error)

	// Detail returns the flat record for a donation id, or sentinel.ErrNotFound.
	Detail(ctx context.Context, id domain.DonationID) (*models.DonationDetail, error)

	TotalByDonor(ctx context.Context, donor domain.DonorID) (int64, error)
	TotalByCampaign(ctx context.Context, campaign domain.CampaignID) (int64, error)
	CountByDonor(ctx context.Context, donor domain.DonorID) (int, error)
	CountByCampaign(ctx context.Context, campaign domain.CampaignID) (int, error)

	// Stats reports the global counter and the most recently assigned id.
	Stats(ctx context.Context) (models.Stats, error)
}
