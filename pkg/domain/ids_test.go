package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tally/pkg/domain-errors"
)

func TestParseRegistryIDs(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseDonorID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParseCampaignID("0")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		_, err := ParseDonorID("abc")
		require.Error(t, err)
	})

	t.Run("accepts positive", func(t *testing.T) {
		id, err := ParseDonorID("42")
		require.NoError(t, err)
		assert.Equal(t, DonorID(42), id)
	})
}

func TestParseDonationIDAllowsZero(t *testing.T) {
	id, err := ParseDonationID("0")
	require.NoError(t, err)
	assert.Equal(t, DonationID(0), id)

	_, err = ParseDonationID("")
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("  acct-123  ")
	require.NoError(t, err)
	assert.Equal(t, Address("acct-123"), addr)

	_, err = ParseAddress("   ")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
