package treasury

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tally/pkg/domain-errors"
)

func TestTransferMovesValueAtomically(t *testing.T) {
	tr := New()
	ctx := context.Background()

	require.NoError(t, tr.Deposit(ctx, "alice", 1000))
	require.NoError(t, tr.Transfer(ctx, "alice", "bob", 400))

	alice, _ := tr.Balance(ctx, "alice")
	bob, _ := tr.Balance(ctx, "bob")
	assert.Equal(t, int64(600), alice)
	assert.Equal(t, int64(400), bob)
}

func TestTransferInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	tr := New()
	ctx := context.Background()

	require.NoError(t, tr.Deposit(ctx, "alice", 100))
	err := tr.Transfer(ctx, "alice", "bob", 500)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientBalance))

	alice, _ := tr.Balance(ctx, "alice")
	bob, _ := tr.Balance(ctx, "bob")
	assert.Equal(t, int64(100), alice)
	assert.Equal(t, int64(0), bob)
}

func TestValidation(t *testing.T) {
	tr := New()
	ctx := context.Background()

	assert.Error(t, tr.Deposit(ctx, "", 10))
	assert.Error(t, tr.Deposit(ctx, "alice", 0))
	assert.Error(t, tr.Transfer(ctx, "alice", "bob", -5))
	assert.Error(t, tr.Transfer(ctx, "", "bob", 5))
}

func TestUnknownAddressHasZeroBalance(t *testing.T) {
	tr := New()
	balance, err := tr.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, balance)
}
