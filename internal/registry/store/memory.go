package store

import (
	"context"
	"sync"

	"tally/internal/registry/models"
	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

// MemoryStore keeps the address-to-id mappings in maps. Ids count up from 1
// and are never handed out twice, even if registration later fails for
// other reasons: assignment happens under the same lock as the uniqueness
// check.
type MemoryStore struct {
	mu              sync.RWMutex
	donorsByAddr    map[domain.Address]*models.DonorIdentity
	donorsByID      map[domain.DonorID]*models.DonorIdentity
	campaignsByAddr map[domain.Address]*models.CampaignIdentity
	campaignsByID   map[domain.CampaignID]*models.CampaignIdentity
	nextDonorID     domain.DonorID
	nextCampaignID  domain.CampaignID
}

// NewMemory constructs an empty in-memory registry store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		donorsByAddr:    make(map[domain.Address]*models.DonorIdentity),
		donorsByID:      make(map[domain.DonorID]*models.DonorIdentity),
		campaignsByAddr: make(map[domain.Address]*models.CampaignIdentity),
		campaignsByID:   make(map[domain.CampaignID]*models.CampaignIdentity),
		nextDonorID:     1,
		nextCampaignID:  1,
	}
}

func (s *MemoryStore) CreateDonor(_ context.Context, addr domain.Address, tick domain.Tick) (*models.DonorIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.donorsByAddr[addr]; exists {
		return nil, sentinel.ErrConflict
	}
	identity := &models.DonorIdentity{
		ID:           s.nextDonorID,
		Address:      addr,
		RegisteredAt: tick,
	}
	s.nextDonorID++
	s.donorsByAddr[addr] = identity
	s.donorsByID[identity.ID] = identity
	return cloneDonor(identity), nil
}

func (s *MemoryStore) CreateCampaign(_ context.Context, addr domain.Address, tick domain.Tick) (*models.CampaignIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaignsByAddr[addr]; exists {
		return nil, sentinel.ErrConflict
	}
	identity := &models.CampaignIdentity{
		ID:           s.nextCampaignID,
		Address:      addr,
		RegisteredAt: tick,
	}
	s.nextCampaignID++
	s.campaignsByAddr[addr] = identity
	s.campaignsByID[identity.ID] = identity
	return cloneCampaign(identity), nil
}

func (s *MemoryStore) DonorByAddress(_ context.Context, addr domain.Address) (*models.DonorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.donorsByAddr[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneDonor(identity), nil
}

func (s *MemoryStore) CampaignByAddress(_ context.Context, addr domain.Address) (*models.CampaignIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.campaignsByAddr[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneCampaign(identity), nil
}

func (s *MemoryStore) DonorByID(_ context.Context, id domain.DonorID) (*models.DonorIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.donorsByID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneDonor(identity), nil
}

func (s *MemoryStore) CampaignByID(_ context.Context, id domain.CampaignID) (*models.CampaignIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.campaignsByID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneCampaign(identity), nil
}

func (s *MemoryStore) Counts(_ context.Context) (models.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Counts{
		Donors:    len(s.donorsByAddr),
		Campaigns: len(s.campaignsByAddr),
	}, nil
}

func cloneDonor(d *models.DonorIdentity) *models.DonorIdentity {
	c := *d
	return &c
}

func cloneCampaign(c *models.CampaignIdentity) *models.CampaignIdentity {
	cp := *c
	return &cp
}
