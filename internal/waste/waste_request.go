package waste

import (
	"github.com/shopspring/decimal"
)

type RecordWasteRequest struct {
	BranchID     int             `json:"branch_id" binding:"required"`
	IngredientID int             `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit"`
	Reason       string          `json:"reason" binding:"required"`
	Notes        string          `json:"notes"`
}

type ListWasteQuery struct {
	BranchID     *int   `form:"branch_id"`
	IngredientID *int   `form:"ingredient_id"`
	Reason       string `form:"reason"`
}
