package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	for _, tt := range []TransactionType{Deposit, Withdrawal, Dispute, Resolve, Chargeback} {
		got, err := ParseTransactionType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}

	_, err := ParseTransactionType("Deposit")
	assert.Error(t, err)
	_, err = ParseTransactionType("transfer")
	assert.Error(t, err)
}

func TestTransactionTypeMovesMoney(t *testing.T) {
	assert.True(t, Deposit.MovesMoney())
	assert.True(t, Withdrawal.MovesMoney())
	assert.False(t, Dispute.MovesMoney())
	assert.False(t, Resolve.MovesMoney())
	assert.False(t, Chargeback.MovesMoney())
	assert.Equal(t, "TransactionType(9)", TransactionType(9).String())
}
