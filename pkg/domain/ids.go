// Package domain defines the typed identifiers shared across modules.
//
// Donor, campaign and donation ids are sequential integers assigned by the
// registry and ledger respectively: they start at their respective floor
// (1 for registry ids, 0 for donation ids), grow monotonically and are never
// reused. Using distinct named types keeps a DonorID from being passed where
// a CampaignID is expected; the compiler enforces the distinction.
package domain

import (
	"strconv"
	"strings"

	dErrors "tally/pkg/domain-errors"
)

// DonorID identifies a registered donor. Zero means "unassigned".
type DonorID uint64

// CampaignID identifies a registered campaign. Zero means "unassigned".
type CampaignID uint64

// DonationID identifies one ledger entry. Ids are gapless per ledger
// instance, starting at 0, so the zero value is a valid id; callers must
// track assignment separately.
type DonationID uint64

// Address is an external account identifier as presented by the host
// (wallet address, account number). The registry maps addresses to
// sequential ids; the treasury keys balances by address.
type Address string

// Tick is a value of the host-provided logical clock.
type Tick uint64

func (d DonorID) IsZero() bool    { return d == 0 }
func (c CampaignID) IsZero() bool { return c == 0 }

func (d DonorID) String() string    { return strconv.FormatUint(uint64(d), 10) }
func (c CampaignID) String() string { return strconv.FormatUint(uint64(c), 10) }
func (d DonationID) String() string { return strconv.FormatUint(uint64(d), 10) }

func (a Address) String() string { return string(a) }
func (a Address) IsZero() bool   { return a == "" }

// ParseDonorID parses a decimal donor id, rejecting zero and malformed input.
func ParseDonorID(s string) (DonorID, error) {
	v, err := parsePositiveID(s, "donor id")
	return DonorID(v), err
}

// ParseCampaignID parses a decimal campaign id, rejecting zero and malformed input.
func ParseCampaignID(s string) (CampaignID, error) {
	v, err := parsePositiveID(s, "campaign id")
	return CampaignID(v), err
}

// ParseDonationID parses a decimal donation id. Zero is valid here: donation
// ids start at 0.
func ParseDonationID(s string) (DonationID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "donation id is required")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "donation id must be a non-negative integer")
	}
	return DonationID(v), nil
}

// ParseAddress normalizes and validates an external address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	return Address(s), nil
}

func parsePositiveID(s, what string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" must be a positive integer")
	}
	return v, nil
}
