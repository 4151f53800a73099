package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	IngredientID int             `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
}

type CreateOrderRequest struct {
	SupplierID  int                `json:"supplier_id" binding:"required"`
	BranchID    int                `json:"branch_id" binding:"required"`
	OrderNumber string             `json:"order_number" binding:"required"`
	Items       []OrderItemRequest `json:"items" binding:"required"`
	ExpectedAt  *time.Time         `json:"expected_at"`
	Notes       string             `json:"notes"`
}

type ReceiveItemRequest struct {
	ItemID      int             `json:"item_id" binding:"required"`
	ReceivedQty decimal.Decimal `json:"received_qty" binding:"required"`
}

type ReceiveOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required"`
}

type UpdateOrderRequest struct {
	Status     *string    `json:"status"`
	ExpectedAt *time.Time `json:"expected_at"`
	Notes      *string    `json:"notes"`
}

type ListOrdersQuery struct {
	BranchID   *int   `form:"branch_id"`
	SupplierID *int   `form:"supplier_id"`
	Status     string `form:"status"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
}
