// Package models holds the quota enforcer entities.
package models

import (
	"tally/pkg/domain"
)

// Config is a snapshot of the enforcer's mutable configuration. Admin is
// per-instance state, not process-global, so several enforcers can coexist
// in one process (and in tests).
type Config struct {
	Admin         domain.Address `json:"admin,omitempty"`
	GlobalLimit   int64          `json:"global_limit"`
	CycleDuration uint64         `json:"cycle_duration"`
	CurrentCycle  uint64         `json:"current_cycle"`
	CycleStart    domain.Tick    `json:"cycle_start"`
}

// Receipt describes a successful check-and-record: which ids were resolved,
// which cycle absorbed the amount and the donor's new cycle total. The
// donate saga keeps it so a later failure can release exactly what was
// recorded.
type Receipt struct {
	Donor      domain.DonorID    `json:"donor_id"`
	Campaign   domain.CampaignID `json:"campaign_id"`
	Cycle      uint64            `json:"cycle"`
	Amount     int64             `json:"amount"`
	DonorTotal int64             `json:"donor_cycle_total"`
}

// CycleStats reports how many donor and campaign records a closed cycle
// accumulated.
type CycleStats struct {
	Cycle           uint64 `json:"cycle"`
	DonorRecords    int    `json:"donor_records"`
	CampaignRecords int    `json:"campaign_records"`
}
