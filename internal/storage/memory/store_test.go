package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

func TestMemoryReportStore(t *testing.T) {
	store := NewMemoryReportStore()
	assert.Nil(t, store.Latest())

	accounts := []models.AccountStatus{{ClientID: 1, Available: decimal.NewFromInt(3), Total: decimal.NewFromInt(3)}}
	require.NoError(t, store.WriteAccounts(context.Background(), accounts))
	accounts[0].ClientID = 99

	require.NoError(t, store.WriteAccounts(context.Background(), []models.AccountStatus{}))
	assert.Equal(t, 2, store.Count())
	assert.Empty(t, store.Latest())

	store.reports = store.reports[:1]
	got := store.Latest()
	require.Len(t, got, 1)
	assert.Equal(t, uint16(1), got[0].ClientID)
}

func TestMemoryReportStoreCancelled(t *testing.T) {
	store := NewMemoryReportStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.WriteAccounts(ctx, nil), context.Canceled)
	assert.Equal(t, 0, store.Count())
}
