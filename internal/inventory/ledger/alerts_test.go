package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func view(ingredientID int, current, reserved, alertAt, reorderAt int64, expiry *time.Time) InventoryView {
	return InventoryView{
		BranchID:         1,
		IngredientID:     ingredientID,
		IngredientName:   "ingredient",
		Unit:             "kg",
		CurrentStock:     decimal.NewFromInt(current),
		ReservedStock:    decimal.NewFromInt(reserved),
		AlertThreshold:   decimal.NewFromInt(alertAt),
		ReorderThreshold: decimal.NewFromInt(reorderAt),
		ExpiryDate:       expiry,
	}
}

func TestBuildAlerts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	soon := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)
	farAway := now.Add(30 * 24 * time.Hour)

	tests := []struct {
		name            string
		views           []InventoryView
		expectedTypes   []AlertType
		expectedSummary AlertSummary
	}{
		{
			name:            "healthy stock raises nothing",
			views:           []InventoryView{view(1, 100, 0, 5, 20, &farAway)},
			expectedTypes:   []AlertType{},
			expectedSummary: AlertSummary{},
		},
		{
			name:            "available at alert threshold",
			views:           []InventoryView{view(1, 5, 0, 5, 20, nil)},
			expectedTypes:   []AlertType{AlertLowStock},
			expectedSummary: AlertSummary{Total: 1, LowStock: 1},
		},
		{
			name:            "reserved stock counts against availability",
			views:           []InventoryView{view(1, 10, 6, 5, 20, nil)},
			expectedTypes:   []AlertType{AlertLowStock},
			expectedSummary: AlertSummary{Total: 1, LowStock: 1},
		},
		{
			name:            "reorder band above alert band",
			views:           []InventoryView{view(1, 15, 0, 5, 20, nil)},
			expectedTypes:   []AlertType{AlertReorder},
			expectedSummary: AlertSummary{Total: 1, Reorder: 1},
		},
		{
			name:            "expiring within warning window",
			views:           []InventoryView{view(1, 100, 0, 5, 20, &soon)},
			expectedTypes:   []AlertType{AlertExpiring},
			expectedSummary: AlertSummary{Total: 1, Expiring: 1},
		},
		{
			name:            "expired stock",
			views:           []InventoryView{view(1, 100, 0, 5, 20, &past)},
			expectedTypes:   []AlertType{AlertExpired},
			expectedSummary: AlertSummary{Total: 1, Expired: 1},
		},
		{
			name:            "one row can raise two alerts",
			views:           []InventoryView{view(1, 3, 0, 5, 20, &past)},
			expectedTypes:   []AlertType{AlertLowStock, AlertExpired},
			expectedSummary: AlertSummary{Total: 2, LowStock: 1, Expired: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts, summary := BuildAlerts(tt.views, now)

			types := make([]AlertType, 0, len(alerts))
			for _, alert := range alerts {
				types = append(types, alert.Type)
			}
			assert.Equal(t, tt.expectedTypes, types)
			assert.Equal(t, tt.expectedSummary, summary)
		})
	}
}
