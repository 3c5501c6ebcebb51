// Package models holds the identity registry entities.
package models

import (
	"tally/pkg/domain"
)

// DonorIdentity maps an external address to its sequential donor id.
// Assigned once, never reused.
type DonorIdentity struct {
	ID           domain.DonorID `json:"id"`
	Address      domain.Address `json:"address"`
	RegisteredAt domain.Tick    `json:"registered_at"`
}

// CampaignIdentity maps an external address to its sequential campaign id.
type CampaignIdentity struct {
	ID           domain.CampaignID `json:"id"`
	Address      domain.Address    `json:"address"`
	RegisteredAt domain.Tick       `json:"registered_at"`
}

// Counts is a snapshot of registry sizes.
type Counts struct {
	Donors    int `json:"donors"`
	Campaigns int `json:"campaigns"`
}
