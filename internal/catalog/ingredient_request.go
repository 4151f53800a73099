package catalog

import (
	"github.com/shopspring/decimal"
)

type CreateIngredientRequest struct {
	Name             string          `json:"name" binding:"required"`
	Unit             string          `json:"unit" binding:"required"`
	CostPerUnit      decimal.Decimal `json:"cost_per_unit"`
	AlertThreshold   decimal.Decimal `json:"alert_threshold"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
}

type UpdateIngredientRequest struct {
	Name             *string          `json:"name"`
	Unit             *string          `json:"unit"`
	CostPerUnit      *decimal.Decimal `json:"cost_per_unit"`
	AlertThreshold   *decimal.Decimal `json:"alert_threshold"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold"`
}
