package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/payhub_backend/internal/core/services"
	"github.com/SscSPs/payhub_backend/internal/platform/config"
	"github.com/SscSPs/payhub_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cfg := &config.Config{
		OpeningBalance:     decimal.RequireFromString("1000.00"),
		BalanceFloorPolicy: "unchecked",
	}
	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(store), nil)

	require.NoError(t, services.SeedDemoData(ctx, container))

	john, err := container.User.AuthenticateUser(ctx, services.DemoUsername, services.DemoPassword)
	require.NoError(t, err)

	// 1000 + 25.00 - 39.99 - 85.50 - 5.75 - 24.99 + 15.50 - 50.00
	acc, err := container.Account.GetAccount(ctx, john.UserID)
	require.NoError(t, err)
	assert.Equal(t, "834.27", acc.Balance.StringFixed(2))

	txns, err := container.Ledger.ListTransactions(ctx, john.UserID, nil)
	require.NoError(t, err)
	require.Len(t, txns, 8)
	assert.Equal(t, "Money Sent", txns[0].Description)
	assert.Equal(t, services.OpeningBalanceDescription, txns[7].Description)

	contacts, err := container.Contact.ListContacts(ctx, john.UserID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	for _, c := range contacts {
		assert.NotNil(t, c.LastPaid, c.DisplayName())
	}

	cards, err := container.Card.ListCards(ctx, john.UserID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.True(t, cards[0].IsDefault)

	// Running it again changes nothing.
	require.NoError(t, services.SeedDemoData(ctx, container))
	txns, err = container.Ledger.ListTransactions(ctx, john.UserID, nil)
	require.NoError(t, err)
	assert.Len(t, txns, 8)
}
