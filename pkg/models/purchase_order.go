package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/pkg/metadata"
)

type PurchaseOrder struct {
	ID          int                  `json:"id" db:"id"`
	OrderNumber string               `json:"order_number" db:"order_number"`
	SupplierID  int                  `json:"supplier_id" db:"supplier_id"`
	BranchID    int                  `json:"branch_id" db:"branch_id"`
	Status      metadata.OrderStatus `json:"status" db:"status"`
	TotalAmount decimal.Decimal      `json:"total_amount" db:"total_amount"`
	OrderedAt   time.Time            `json:"ordered_at" db:"ordered_at"`
	ExpectedAt  *time.Time           `json:"expected_at,omitempty" db:"expected_at"`
	ReceivedAt  *time.Time           `json:"received_at,omitempty" db:"received_at"`
	ApprovedBy  *int                 `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt  *time.Time           `json:"approved_at,omitempty" db:"approved_at"`
	CreatedBy   *int                 `json:"created_by,omitempty" db:"created_by"`
	Notes       string               `json:"notes,omitempty" db:"notes"`

	Items []PurchaseOrderItem `json:"items" db:"-"`
}

func (o *PurchaseOrder) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "purchase_order",
	}
}

// ReceivedQty is cumulative across repeated partial receipts and never
// exceeds the ordered Quantity.
type PurchaseOrderItem struct {
	ID              int             `json:"id" db:"id"`
	PurchaseOrderID int             `json:"purchase_order_id" db:"purchase_order_id"`
	IngredientID    int             `json:"ingredient_id" db:"ingredient_id"`
	Quantity        decimal.Decimal `json:"quantity" db:"quantity"`
	Unit            string          `json:"unit" db:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
	ReceivedQty     decimal.Decimal `json:"received_qty" db:"received_qty"`
}

// FullyReceived reports whether the cumulative receipts cover the ordered
// quantity.
func (i *PurchaseOrderItem) FullyReceived() bool {
	return i.ReceivedQty.GreaterThanOrEqual(i.Quantity)
}
