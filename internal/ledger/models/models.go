// Package models holds the donation ledger entities.
package models

import (
	"tally/pkg/domain"
)

// MaxListEntries caps the per-donor and per-campaign lists. Appends beyond
// the cap fail rather than evict.
const MaxListEntries = 200

// MaxPageLimit bounds one paginated read.
const MaxPageLimit = 100

// DonationEntry is one donation as seen from the donor's list.
type DonationEntry struct {
	Campaign domain.CampaignID `json:"campaign_id"`
	Amount   int64             `json:"amount"`
	Tick     domain.Tick       `json:"tick"`
	Donation domain.DonationID `json:"donation_id"`
}

// CampaignDonationEntry is one donation as seen from the campaign's list.
type CampaignDonationEntry struct {
	Donor    domain.DonorID    `json:"donor_id"`
	Amount   int64             `json:"amount"`
	Tick     domain.Tick       `json:"tick"`
	Donation domain.DonationID `json:"donation_id"`
}

// DonationDetail is the flat record keyed by donation id.
type DonationDetail struct {
	ID       domain.DonationID `json:"donation_id"`
	Donor    domain.DonorID    `json:"donor_id"`
	Campaign domain.CampaignID `json:"campaign_id"`
	Amount   int64             `json:"amount"`
	Tick     domain.Tick       `json:"tick"`
}

// DonorPage is one page of a donor's list.
type DonorPage struct {
	Items   []DonationEntry `json:"items"`
	Total   int             `json:"total"`
	HasMore bool            `json:"has_more"`
}

// CampaignPage is one page of a campaign's list.
type CampaignPage struct {
	Items   []CampaignDonationEntry `json:"items"`
	Total   int                     `json:"total"`
	HasMore bool                    `json:"has_more"`
}

// Stats summarizes the whole ledger instance.
type Stats struct {
	TotalDonations uint64            `json:"total_donations"`
	LatestID       domain.DonationID `json:"latest_id"`
	HasDonations   bool              `json:"has_donations"`
}
