// Package models holds the campaign state machine entities.
package models

import (
	"tally/pkg/domain"
)

// Campaign is one campaign's configuration and running state. Configuration
// fields are fixed at initialization; only Active, RunningTotal and the
// contribution map change afterwards.
type Campaign struct {
	ID             domain.CampaignID `json:"campaign_id"`
	Address        domain.Address    `json:"address"`
	Owner          domain.Address    `json:"owner"`
	MaxPerDonation int64             `json:"max_per_donation"`
	TotalCap       int64             `json:"total_cap"`
	StartTick      domain.Tick       `json:"start_tick"`
	Duration       uint64            `json:"duration"`
	Active         bool              `json:"active"`
	RunningTotal   int64             `json:"running_total"`
}

// Expired reports whether the campaign's donation window has passed.
func (c *Campaign) Expired(tick domain.Tick) bool {
	return uint64(tick) > uint64(c.StartTick)+c.Duration
}

// InWindow reports whether the tick falls inside [start, start+duration].
func (c *Campaign) InWindow(tick domain.Tick) bool {
	return tick >= c.StartTick && !c.Expired(tick)
}

// Withdrawal records one payout. Sequence is a per-campaign monotonic
// counter starting at 0, so every withdrawal has a stable key even when
// recipient, amount and tick all repeat.
type Withdrawal struct {
	Sequence  uint64         `json:"sequence"`
	Recipient domain.Address `json:"recipient"`
	Amount    int64          `json:"amount"`
	Tick      domain.Tick    `json:"tick"`
}
