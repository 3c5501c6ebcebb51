//go:build integration

package cycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tally/internal/enforcer/store/cycle"
	"tally/pkg/platform/sentinel"
	"tally/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *cycle.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = cycle.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRecordAccumulatesBothSides() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, 1, 7, 0, 300))
	s.Require().NoError(s.store.Record(ctx, 1, 8, 0, 200))
	s.Require().NoError(s.store.Record(ctx, 2, 7, 0, 50))

	donorTotal, err := s.store.DonorTotal(ctx, 1, 0)
	s.Require().NoError(err)
	s.Equal(int64(500), donorTotal)

	campaignTotal, err := s.store.CampaignTotal(ctx, 7, 0)
	s.Require().NoError(err)
	s.Equal(int64(350), campaignTotal)
}

func (s *RedisStoreSuite) TestUnseenKeysReadZero() {
	ctx := context.Background()

	donorTotal, err := s.store.DonorTotal(ctx, 99, 3)
	s.Require().NoError(err)
	s.Zero(donorTotal)

	campaignTotal, err := s.store.CampaignTotal(ctx, 99, 3)
	s.Require().NoError(err)
	s.Zero(campaignTotal)
}

func (s *RedisStoreSuite) TestReleaseUndoesRecord() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, 1, 7, 2, 400))
	s.Require().NoError(s.store.Release(ctx, 1, 7, 2, 400))

	donorTotal, err := s.store.DonorTotal(ctx, 1, 2)
	s.Require().NoError(err)
	s.Zero(donorTotal)

	campaignTotal, err := s.store.CampaignTotal(ctx, 7, 2)
	s.Require().NoError(err)
	s.Zero(campaignTotal)
}

func (s *RedisStoreSuite) TestReleaseBelowZeroFails() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, 1, 7, 0, 100))

	err := s.store.Release(ctx, 1, 7, 0, 150)
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)

	// The recorded total survives a refused release.
	donorTotal, err := s.store.DonorTotal(ctx, 1, 0)
	s.Require().NoError(err)
	s.Equal(int64(100), donorTotal)
}

func (s *RedisStoreSuite) TestCycleStatsCountsRecords() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, 1, 7, 0, 10))
	s.Require().NoError(s.store.Record(ctx, 2, 7, 0, 10))
	s.Require().NoError(s.store.Record(ctx, 3, 8, 0, 10))
	s.Require().NoError(s.store.Record(ctx, 1, 7, 1, 10))

	donors, campaigns, err := s.store.CycleStats(ctx, 0)
	s.Require().NoError(err)
	s.Equal(3, donors)
	s.Equal(2, campaigns)

	donors, campaigns, err = s.store.CycleStats(ctx, 1)
	s.Require().NoError(err)
	s.Equal(1, donors)
	s.Equal(1, campaigns)
}

// a second store on the same client must see the same totals, since
// everything lives in redis hashes rather than process memory.
func (s *RedisStoreSuite) TestTotalsSharedAcrossInstances() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, 4, 9, 5, 777))

	other := cycle.NewRedis(s.redis.Client)
	total, err := other.DonorTotal(ctx, 4, 5)
	s.Require().NoError(err)
	s.Equal(int64(777), total)
}
