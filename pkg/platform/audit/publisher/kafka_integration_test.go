//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"tally/pkg/platform/audit"
	"tally/pkg/platform/audit/publisher"
	"tally/pkg/testutil/containers"
)

func TestKafkaPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := containers.NewRedpandaContainer(t)

	pub, err := publisher.NewKafka(ctx, []string{broker.Broker}, "tally.audit")
	require.NoError(t, err)
	defer pub.Close()

	events := []audit.Event{
		{
			Category: audit.EventQuotaRecorded.Category(),
			Action:   string(audit.EventQuotaRecorded),
			Tick:     7,
			Donor:    1,
			Campaign: 2,
			Amount:   500,
		},
		{
			Category: audit.EventAdminSet.Category(),
			Action:   string(audit.EventAdminSet),
			Actor:    "admin-addr",
		},
	}
	for _, event := range events {
		require.NoError(t, pub.Emit(ctx, event))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics("tally.audit"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) < len(events) {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, fetches.Err())
		records = append(records, fetches.Records()...)
	}
	require.Len(t, records, len(events))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, string(audit.EventQuotaRecorded), got.Action)
	assert.Equal(t, audit.CategoryCompliance, got.Category)
	assert.Equal(t, int64(500), got.Amount)
	assert.False(t, got.OccurredAt.IsZero(), "publisher stamps occurred_at")

	// Records are keyed by category for stable partitioning.
	assert.Equal(t, []byte(audit.CategoryCompliance), records[0].Key)
	assert.Equal(t, []byte(audit.CategoryAdmin), records[1].Key)
}

func TestNewKafkaValidation(t *testing.T) {
	ctx := context.Background()

	_, err := publisher.NewKafka(ctx, nil, "tally.audit")
	require.Error(t, err)

	// Topic validation happens before any broker contact.
	_, err = publisher.NewKafka(ctx, []string{"localhost:9092"}, "")
	require.Error(t, err)
}
