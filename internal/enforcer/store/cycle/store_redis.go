package cycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"tally/pkg/domain"
	"tally/pkg/platform/sentinel"
)

const (
	donorHashPrefix    = "quota:donor:"
	campaignHashPrefix = "quota:campaign:"
)

// RedisStore keeps per-cycle totals in Redis hashes, one hash per cycle per
// kind, fields keyed by id. Useful when several instances share quota state.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed cycle store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func donorHash(cycle uint64) string    { return donorHashPrefix + strconv.FormatUint(cycle, 10) }
func campaignHash(cycle uint64) string { return campaignHashPrefix + strconv.FormatUint(cycle, 10) }

func (s *RedisStore) DonorTotal(ctx context.Context, donor domain.DonorID, cycle uint64) (int64, error) {
	return s.hashTotal(ctx, donorHash(cycle), donor.String())
}

func (s *RedisStore) CampaignTotal(ctx context.Context, campaign domain.CampaignID, cycle uint64) (int64, error) {
	return s.hashTotal(ctx, campaignHash(cycle), campaign.String())
}

func (s *RedisStore) hashTotal(ctx context.Context, key, field string) (int64, error) {
	raw, err := s.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get cycle total: %w", err)
	}
	total, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cycle total %q: %w", raw, err)
	}
	return total, nil
}

func (s *RedisStore) Record(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, cycle uint64, amount int64) error {
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, donorHash(cycle), donor.String(), amount)
	pipe.HIncrBy(ctx, campaignHash(cycle), campaign.String(), amount)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record cycle totals: %w", err)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, donor domain.DonorID, campaign domain.CampaignID, cycle uint64, amount int64) error {
	donorTotal, err := s.DonorTotal(ctx, donor, cycle)
	if err != nil {
		return err
	}
	campaignTotal, err := s.CampaignTotal(ctx, campaign, cycle)
	if err != nil {
		return err
	}
	if donorTotal < amount || campaignTotal < amount {
		return sentinel.ErrInvalidState
	}

	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, donorHash(cycle), donor.String(), -amount)
	pipe.HIncrBy(ctx, campaignHash(cycle), campaign.String(), -amount)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("release cycle totals: %w", err)
	}
	return nil
}

func (s *RedisStore) CycleStats(ctx context.Context, cycle uint64) (int, int, error) {
	donorRecords, err := s.client.HLen(ctx, donorHash(cycle)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("count donor records: %w", err)
	}
	campaignRecords, err := s.client.HLen(ctx, campaignHash(cycle)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("count campaign records: %w", err)
	}
	return int(donorRecords), int(campaignRecords), nil
}
