package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/pkg/metadata"
)

type InventoryTransfer struct {
	ID             int                     `json:"id" db:"id"`
	TransferNumber string                  `json:"transfer_number" db:"transfer_number"`
	SourceBranchID int                     `json:"source_branch_id" db:"source_branch_id"`
	TargetBranchID int                     `json:"target_branch_id" db:"target_branch_id"`
	Status         metadata.TransferStatus `json:"status" db:"status"`
	RequestedBy    *int                    `json:"requested_by,omitempty" db:"requested_by"`
	RequestedAt    time.Time               `json:"requested_at" db:"requested_at"`
	ApprovedBy     *int                    `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt     *time.Time              `json:"approved_at,omitempty" db:"approved_at"`
	CompletedBy    *int                    `json:"completed_by,omitempty" db:"completed_by"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty" db:"completed_at"`
	Notes          string                  `json:"notes,omitempty" db:"notes"`

	Items []InventoryTransferItem `json:"items" db:"-"`
}

func (t *InventoryTransfer) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   t.ID,
		ResourceType: "inventory_transfer",
	}
}

type InventoryTransferItem struct {
	ID                int             `json:"id" db:"id"`
	TransferID        int             `json:"transfer_id" db:"transfer_id"`
	IngredientID      int             `json:"ingredient_id" db:"ingredient_id"`
	SourceInventoryID int             `json:"source_inventory_id" db:"source_inventory_id"`
	TargetInventoryID *int            `json:"target_inventory_id,omitempty" db:"target_inventory_id"`
	Quantity          decimal.Decimal `json:"quantity" db:"quantity"`
	Unit              string          `json:"unit" db:"unit"`
}
