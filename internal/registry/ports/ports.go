// Package ports defines the store interface for the identity registry.
package ports

import (
	"context"

	"tally/internal/registry/models"
	"tally/pkg/domain"
)

// Store persists address-to-id mappings. Ids are assigned by the store,
// sequentially from 1, and never reused. Implementations return
// sentinel.ErrConflict when an address is already mapped and
// sentinel.ErrNotFound on unknown lookups.
type Store interface {
	// CreateDonor assigns the next donor id to an unseen address.
	CreateDonor(ctx context.Context, addr domain.Address, tick domain.Tick) (*models.DonorIdentity, error)

	// CreateCampaign assigns the next campaign id to an unseen address.
	CreateCampaign(ctx context.Context, addr domain.Address, tick domain.Tick) (*models.CampaignIdentity, error)

	// DonorByAddress resolves an address to its donor identity.
	DonorByAddress(ctx context.Context, addr domain.Address) (*models.DonorIdentity, error)

	// CampaignByAddress resolves an address to its campaign identity.
	CampaignByAddress(ctx context.Context, addr domain.Address) (*models.CampaignIdentity, error)

	// DonorByID resolves a donor id back to its identity.
	DonorByID(ctx context.Context, id domain.DonorID) (*models.DonorIdentity, error)

	// CampaignByID resolves a campaign id back to its identity.
	CampaignByID(ctx context.Context, id domain.CampaignID) (*models.CampaignIdentity, error)

	// Counts returns registry sizes.
	Counts(ctx context.Context) (models.Counts, error)
}
