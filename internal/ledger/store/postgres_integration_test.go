//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tally/internal/ledger/models"
	"tally/internal/ledger/store"
	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
	"tally/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "ledger_donations", "ledger_counter")
	s.Require().NoError(err)
	// Migrate reseeds the counter row the truncate removed.
	s.Require().NoError(s.store.Migrate(ctx))
}

func (s *PostgresStoreSuite) append(donor domain.DonorID, campaign domain.CampaignID, amount int64, tick domain.Tick) domain.DonationID {
	s.T().Helper()
	id, err := s.store.Append(context.Background(), donor, campaign, amount, tick)
	s.Require().NoError(err)
	return id
}

func (s *PostgresStoreSuite) TestAppendAssignsGaplessIDs() {
	for i := 0; i < 5; i++ {
		id := s.append(1, 7, 100, domain.Tick(i))
		s.Equal(domain.DonationID(i), id)
	}

	stats, err := s.store.Stats(context.Background())
	s.Require().NoError(err)
	s.Equal(uint64(5), stats.TotalDonations)
	s.True(stats.HasDonations)
	s.Equal(domain.DonationID(4), stats.LatestID)
}

func (s *PostgresStoreSuite) TestDetailRoundTrip() {
	ctx := context.Background()
	id := s.append(3, 9, 250, 42)

	detail, err := s.store.Detail(ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.DonorID(3), detail.Donor)
	s.Equal(domain.CampaignID(9), detail.Campaign)
	s.Equal(int64(250), detail.Amount)
	s.Equal(domain.Tick(42), detail.Tick)

	_, err = s.store.Detail(ctx, 999)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDonorCapRejectsWithoutBurningIDs() {
	ctx := context.Background()

	for i := 0; i < models.MaxListEntries; i++ {
		// Spread across campaigns so only the donor list fills.
		s.append(1, domain.CampaignID(i%10), 10, 0)
	}

	_, err := s.store.Append(ctx, 1, 3, 10, 0)
	s.Require().ErrorIs(err, sentinel.ErrCapacity)

	count, err := s.store.CountByDonor(ctx, 1)
	s.Require().NoError(err)
	s.Equal(models.MaxListEntries, count)

	// The rejected append rolled back its claimed id.
	id := s.append(2, 3, 10, 0)
	s.Equal(domain.DonationID(models.MaxListEntries), id)
}

func (s *PostgresStoreSuite) TestPaginationWindows() {
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		s.append(1, 7, int64(i+1), domain.Tick(i))
	}

	entries, total, err := s.store.DonationsByDonor(ctx, 1, 2, 3)
	s.Require().NoError(err)
	s.Equal(7, total)
	s.Require().Len(entries, 3)
	s.Equal(int64(3), entries[0].Amount)
	s.Equal(int64(5), entries[2].Amount)

	// A window starting past the end is empty, not an error.
	entries, total, err = s.store.DonationsByCampaign(ctx, 7, 10, 5)
	s.Require().NoError(err)
	s.Equal(7, total)
	s.Empty(entries)
}

func (s *PostgresStoreSuite) TestAggregates() {
	ctx := context.Background()
	s.append(1, 7, 100, 0)
	s.append(1, 8, 200, 1)
	s.append(2, 7, 50, 2)

	donorTotal, err := s.store.TotalByDonor(ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(300), donorTotal)

	campaignTotal, err := s.store.TotalByCampaign(ctx, 7)
	s.Require().NoError(err)
	s.Equal(int64(150), campaignTotal)

	// Unknown ids aggregate to zero.
	donorTotal, err = s.store.TotalByDonor(ctx, 99)
	s.Require().NoError(err)
	s.Zero(donorTotal)
}
