package store

import (
	"context"
	"sync"

	"tally/internal/ledger/models"
	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

// MemoryStore is the in-memory ledger record. Appends and reads share one
// lock so the cap check, the id assignment and both list writes commit as a
// unit.
type MemoryStore struct {
	mu      sync.RWMutex
	byDonor map[domain.DonorID][]models.DonationEntry
	byCamp  map[domain.CampaignID][]models.CampaignDonationEntry
	details map[domain.DonationID]models.DonationDetail
	nextID  domain.DonationID
	listCap int
}

// NewMemory constructs an empty ledger store with the standard list cap.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		byDonor: make(map[domain.DonorID][]models.DonationEntry),
		byCamp:  make(map[domain.CampaignID][]models.CampaignDonationEntry),
		details: make(map[domain.DonationID]models.DonationDetail),
		listCap: models.MaxListEntries,
	}
}

func (s *MemoryStore) Append(_ context.Context, donor domain.DonorID, campaign domain.CampaignID, amount int64, tick domain.Tick) (domain.DonationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Both caps are checked before any write so a full list on either side
	// leaves the other side untouched.
	if len(s.byDonor[donor]) >= s.listCap || len(s.byCamp[campaign]) >= s.listCap {
		return 0, sentinel.ErrCapacity
	}

	id := s.nextID
	s.byDonor[donor] = append(s.byDonor[donor], models.DonationEntry{
		Campaign: campaign,
		Amount:   amount,
		Tick:     tick,
		Donation: id,
	})
	s.byCamp[campaign] = append(s.byCamp[campaign], models.CampaignDonationEntry{
		Donor:    donor,
		Amount:   amount,
		Tick:     tick,
		Donation: id,
	})
	s.details[id] = models.DonationDetail{
		ID:       id,
		Donor:    donor,
		Campaign: campaign,
		Amount:   amount,
		Tick:     tick,
	}
	s.nextID++
	return id, nil
}

func (s *MemoryStore) DonationsByDonor(_ context.Context, donor domain.DonorID, start, limit int) ([]models.DonationEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byDonor[donor]
	total := len(list)
	lo, hi := window(total, start, limit)
	items := make([]models.DonationEntry, hi-lo)
	copy(items, list[lo:hi])
	return items, total, nil
}

func (s *MemoryStore) DonationsByCampaign(_ context.Context, campaign domain.CampaignID, start, limit int) ([]models.CampaignDonationEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byCamp[campaign]
	total := len(list)
	lo, hi := window(total, start, limit)
	items := make([]models.CampaignDonationEntry, hi-lo)
	copy(items, list[lo:hi])
	return items, total, nil
}

func (s *MemoryStore) Detail(_ context.Context, id domain.DonationID) (*models.DonationDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, ok := s.details[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &detail, nil
}

func (s *MemoryStore) TotalByDonor(_ context.Context, donor domain.DonorID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for _, entry := range s.byDonor[donor] {
		sum += entry.Amount
	}
	return sum, nil
}

func (s *MemoryStore) TotalByCampaign(_ context.Context, campaign domain.CampaignID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for _, entry := range s.byCamp[campaign] {
		sum += entry.Amount
	}
	return sum, nil
}

func (s *MemoryStore) CountByDonor(_ context.Context, donor domain.DonorID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byDonor[donor]), nil
}

func (s *MemoryStore) CountByCampaign(_ context.Context, campaign domain.CampaignID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byCamp[campaign]), nil
}

func (s *MemoryStore) Stats(_ context.Context) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{TotalDonations: uint64(s.nextID)}
	if s.nextID > 0 {
		stats.LatestID = s.nextID - 1
		stats.HasDonations = true
	}
	return stats, nil
}

// window clamps [start, start+limit) to a list of the given length.
func window(total, start, limit int) (int, int) {
	if start >= total {
		return 0, 0
	}
	hi := start + limit
	if hi > total {
		hi = total
	}
	return start, hi
}
