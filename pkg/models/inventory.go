package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/pkg/metadata"
)

// BranchInventory is the per-branch, per-ingredient stock ledger row. The
// (branch_id, ingredient_id) pair is unique; rows are created lazily on the
// first stock movement into a branch.
type BranchInventory struct {
	ID            int             `json:"id" db:"id"`
	BranchID      int             `json:"branch_id" db:"branch_id"`
	IngredientID  int             `json:"ingredient_id" db:"ingredient_id"`
	CurrentStock  decimal.Decimal `json:"current_stock" db:"current_stock"`
	ReservedStock decimal.Decimal `json:"reserved_stock" db:"reserved_stock"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty" db:"expiry_date"`
	LastRestockAt *time.Time      `json:"last_restock_at,omitempty" db:"last_restock_at"`
}

// AvailableStock is derived, never stored.
func (b *BranchInventory) AvailableStock() decimal.Decimal {
	return b.CurrentStock.Sub(b.ReservedStock)
}

func (b *BranchInventory) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   b.ID,
		ResourceType: "branch_inventory",
	}
}

// InventoryTransaction is one append-only audit row per stock delta. The
// invariant stock_after = stock_before + quantity_change holds for every row,
// and stock_after matches the ledger's current_stock at commit time.
type InventoryTransaction struct {
	ID              int                      `json:"id" db:"id"`
	BranchID        int                      `json:"branch_id" db:"branch_id"`
	IngredientID    int                      `json:"ingredient_id" db:"ingredient_id"`
	TransactionType metadata.TransactionType `json:"transaction_type" db:"transaction_type"`
	QuantityChange  decimal.Decimal          `json:"quantity_change" db:"quantity_change"`
	StockBefore     decimal.Decimal          `json:"stock_before" db:"stock_before"`
	StockAfter      decimal.Decimal          `json:"stock_after" db:"stock_after"`
	Reason          string                   `json:"reason,omitempty" db:"reason"`
	CreatedBy       *int                     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time                `json:"created_at" db:"created_at"`
}
