// Package audit defines the auditable event stream emitted by the
// compliance modules. Events are transport-agnostic so publishers can fan
// out to logs, Kafka or stores without the domain knowing.
package audit

import (
	"time"

	"tally/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose, which
// drives retention and routing downstream.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance:
	// donations, withdrawals, quota decisions. Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryAdmin covers configuration changes: admin transfers, limit
	// and cycle-duration updates, campaign status toggles.
	CategoryAdmin EventCategory = "admin"

	// CategoryOperations covers routine activity useful for debugging:
	// registrations, cycle advances.
	CategoryOperations EventCategory = "operations"
)

// Event captures one auditable action. Zero-valued fields are omitted by
// publishers.
type Event struct {
	Category   EventCategory     `json:"category"`
	Action     string            `json:"action"`
	OccurredAt time.Time         `json:"occurred_at"`
	Tick       domain.Tick       `json:"tick"`
	Donor      domain.DonorID    `json:"donor_id,omitempty"`
	Campaign   domain.CampaignID `json:"campaign_id,omitempty"`
	Donation   domain.DonationID `json:"donation_id,omitempty"`
	Actor      domain.Address    `json:"actor,omitempty"`
	Amount     int64             `json:"amount,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

// AuditEvent names every action the platform emits.
type AuditEvent string

const (
	// Registry events
	EventDonorRegistered    AuditEvent = "donor_registered"
	EventCampaignRegistered AuditEvent = "campaign_registered"

	// Enforcer events
	EventAdminSet            AuditEvent = "admin_set"
	EventAdminTransferred    AuditEvent = "admin_transferred"
	EventGlobalLimitUpdated  AuditEvent = "global_limit_updated"
	EventCycleDurationUpdate AuditEvent = "cycle_duration_updated"
	EventCycleAdvanced       AuditEvent = "cycle_advanced"
	EventQuotaExceeded       AuditEvent = "quota_exceeded"
	EventQuotaRecorded       AuditEvent = "quota_recorded"
	EventQuotaReleased       AuditEvent = "quota_released"

	// Campaign events
	EventCampaignInitialized AuditEvent = "campaign_initialized"
	EventDonationAccepted    AuditEvent = "donation_accepted"
	EventDonationRolledBack  AuditEvent = "donation_rolled_back"
	EventWithdrawalRecorded  AuditEvent = "withdrawal_recorded"
	EventCampaignPaused      AuditEvent = "campaign_paused"
	EventCampaignResumed     AuditEvent = "campaign_resumed"

	// Ledger events
	EventDonationLogged AuditEvent = "donation_logged"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventDonorRegistered:    CategoryOperations,
	EventCampaignRegistered: CategoryOperations,
	EventCycleAdvanced:      CategoryOperations,

	EventAdminSet:            CategoryAdmin,
	EventAdminTransferred:    CategoryAdmin,
	EventGlobalLimitUpdated:  CategoryAdmin,
	EventCycleDurationUpdate: CategoryAdmin,
	EventCampaignPaused:      CategoryAdmin,
	EventCampaignResumed:     CategoryAdmin,

	EventQuotaExceeded:       CategoryCompliance,
	EventQuotaRecorded:       CategoryCompliance,
	EventQuotaReleased:       CategoryCompliance,
	EventCampaignInitialized: CategoryCompliance,
	EventDonationAccepted:    CategoryCompliance,
	EventDonationRolledBack:  CategoryCompliance,
	EventWithdrawalRecorded:  CategoryCompliance,
	EventDonationLogged:      CategoryCompliance,
}

// Category returns the EventCategory for this audit event. Unknown events
// default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
