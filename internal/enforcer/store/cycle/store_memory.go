package cycle

import (
	"context"
	"sync"

	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

type donorKey struct {
	donor domain.DonorID
	cycle uint64
}

type campaignKey struct {
	campaign domain.CampaignID
	cycle    uint64
}

// MemoryStore keeps per-cycle totals in maps. One lock covers both maps so
// Record and Release mutate donor and campaign totals together.
type MemoryStore struct {
	mu             sync.RWMutex
	donorTotals    map[donorKey]int64
	campaignTotals map[campaignKey]int64
}

// NewMemory constructs an empty in-memory cycle store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		donorTotals:    make(map[donorKey]int64),
		campaignTotals: make(map[campaignKey]int64),
	}
}

func (s *MemoryStore) DonorTotal(_ context.Context, donor domain.DonorID, cycle uint64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.donorTotals[donorKey{donor, cycle}], nil
}

func (s *MemoryStore) CampaignTotal(_ context.Context, campaign domain.CampaignID, cycle uint64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campaignTotals[campaignKey{campaign, cycle}], nil
}

func (s *MemoryStore) Record(_ context.Context, donor domain.DonorID, campaign domain.CampaignID, cycle uint64, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donorTotals[donorKey{donor, cycle}] += amount
	s.campaignTotals[campaignKey{campaign, cycle}] += amount
	return nil
}

func (s *MemoryStore) Release(_ context.Context, donor domain.DonorID, campaign domain.CampaignID, cycle uint64, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dk := donorKey{donor, cycle}
	ck := campaignKey{campaign, cycle}
	if s.donorTotals[dk] < amount || s.campaignTotals[ck] < amount {
		return sentinel.ErrInvalidState
	}
	s.donorTotals[dk] -= amount
	s.campaignTotals[ck] -= amount
	return nil
}

func (s *MemoryStore) CycleStats(_ context.Context, cycle uint64) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	donorRecords := 0
	for k := range s.donorTotals {
		if k.cycle == cycle {
			donorRecords++
		}
	}
	campaignRecords := 0
	for k := range s.campaignTotals {
		if k.cycle == cycle {
			campaignRecords++
		}
	}
	return donorRecords, campaignRecords, nil
}
