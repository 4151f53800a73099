package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

func TestPlanDelta(t *testing.T) {
	userID := 7
	inventory := &models.BranchInventory{
		ID:           3,
		BranchID:     1,
		IngredientID: 12,
		CurrentStock: decimal.NewFromInt(10),
	}

	tests := []struct {
		name          string
		delta         decimal.Decimal
		expectedAfter decimal.Decimal
	}{
		{"restock adds", decimal.NewFromInt(5), decimal.NewFromInt(15)},
		{"waste subtracts", decimal.NewFromInt(-4), decimal.NewFromInt(6)},
		{"draining to zero is permitted", decimal.NewFromInt(-10), decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stockAfter, transaction, err := planDelta(inventory, tt.delta, metadata.TransactionAdjustment, "stocktake", &userID)

			assert.NoError(t, err)
			assert.True(t, stockAfter.Equal(tt.expectedAfter))

			assert.True(t, transaction.StockBefore.Equal(inventory.CurrentStock))
			assert.True(t, transaction.StockAfter.Equal(stockAfter))
			assert.True(t, transaction.StockAfter.Equal(transaction.StockBefore.Add(transaction.QuantityChange)))
			assert.Equal(t, inventory.BranchID, transaction.BranchID)
			assert.Equal(t, inventory.IngredientID, transaction.IngredientID)
			assert.Equal(t, "stocktake", transaction.Reason)
			assert.Equal(t, &userID, transaction.CreatedBy)
		})
	}
}

func TestPlanDeltaRejectsOverdraw(t *testing.T) {
	inventory := &models.BranchInventory{
		ID:           3,
		BranchID:     1,
		IngredientID: 12,
		CurrentStock: decimal.NewFromInt(10),
	}

	_, _, err := planDelta(inventory, decimal.NewFromInt(-11), metadata.TransactionWaste, "spill", nil)

	var stockErr *custom_error.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 12, stockErr.IngredientID)
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(10)))
	assert.True(t, stockErr.Requested.Equal(decimal.NewFromInt(11)))
}
