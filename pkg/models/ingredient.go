package models

import (
	"github.com/shopspring/decimal"
)

// Ingredient is static catalog reference data. Rows are never deleted while
// referenced by inventory, orders or waste logs.
type Ingredient struct {
	ID               int             `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Unit             string          `json:"unit" db:"unit"`
	CostPerUnit      decimal.Decimal `json:"cost_per_unit" db:"cost_per_unit"`
	AlertThreshold   decimal.Decimal `json:"alert_threshold" db:"alert_threshold"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold" db:"reorder_threshold"`
}

func (i *Ingredient) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "ingredient",
	}
}
