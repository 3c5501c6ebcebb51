package store

import (
	"context"
	"sync"

	"tally/internal/campaign/models"
	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

type record struct {
	campaign      models.Campaign
	contributions map[domain.DonorID]int64
	withdrawals   []models.Withdrawal
}

// MemoryStore keeps campaign records in a map keyed by holding address.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[domain.Address]*record
}

// NewMemory constructs an empty in-memory campaign store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[domain.Address]*record)}
}

func (s *MemoryStore) Create(_ context.Context, campaign *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[campaign.Address]; exists {
		return sentinel.ErrConflict
	}
	s.records[campaign.Address] = &record{
		campaign:      *campaign,
		contributions: make(map[domain.DonorID]int64),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, addr domain.Address) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	campaign := rec.campaign
	return &campaign, nil
}

func (s *MemoryStore) SetActive(_ context.Context, addr domain.Address, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[addr]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.campaign.Active = active
	return nil
}

func (s *MemoryStore) ApplyDonation(_ context.Context, addr domain.Address, donor domain.DonorID, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[addr]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	rec.contributions[donor] += amount
	rec.campaign.RunningTotal += amount
	return rec.campaign.RunningTotal, nil
}

func (s *MemoryStore) RevertDonation(_ context.Context, addr domain.Address, donor domain.DonorID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[addr]
	if !ok {
		return sentinel.ErrNotFound
	}
	if rec.contributions[donor] < amount || rec.campaign.RunningTotal < amount {
		return sentinel.ErrInvalidState
	}
	rec.contributions[donor] -= amount
	rec.campaign.RunningTotal -= amount
	return nil
}

func (s *MemoryStore) Contribution(_ context.Context, addr domain.Address, donor domain.DonorID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[addr]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return rec.contributions[donor], nil
}

func (s *MemoryStore) AppendWithdrawal(_ context.Context, addr domain.Address, recipient domain.Address, amount int64, tick domain.Tick) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	withdrawal := models.Withdrawal{
		Sequence:  uint64(len(rec.withdrawals)),
		Recipient: recipient,
		Amount:    amount,
		Tick:      tick,
	}
	rec.withdrawals = append(rec.withdrawals, withdrawal)
	return &withdrawal, nil
}

func (s *MemoryStore) WithdrawalBySequence(_ context.Context, addr domain.Address, sequence uint64) (*models.Withdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if sequence >= uint64(len(rec.withdrawals)) {
		return nil, sentinel.ErrNotFound
	}
	withdrawal := rec.withdrawals[sequence]
	return &withdrawal, nil
}

func (s *MemoryStore) Withdrawals(_ context.Context, addr domain.Address) ([]models.Withdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]models.Withdrawal, len(rec.withdrawals))
	copy(out, rec.withdrawals)
	return out, nil
}
