package transfers

import (
	"github.com/shopspring/decimal"
)

type TransferItemRequest struct {
	IngredientID int             `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
}

type CreateTransferRequest struct {
	SourceBranchID int                   `json:"source_branch_id" binding:"required"`
	TargetBranchID int                   `json:"target_branch_id" binding:"required"`
	TransferNumber string                `json:"transfer_number" binding:"required"`
	Items          []TransferItemRequest `json:"items" binding:"required"`
	Notes          string                `json:"notes"`
}

type UpdateTransferRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}
