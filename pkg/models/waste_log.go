package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/pkg/metadata"
)

// WasteLog rows are append-only. LossValue is frozen at record time from the
// ingredient's cost_per_unit.
type WasteLog struct {
	ID           int                  `json:"id" db:"id"`
	BranchID     int                  `json:"branch_id" db:"branch_id"`
	IngredientID int                  `json:"ingredient_id" db:"ingredient_id"`
	Quantity     decimal.Decimal      `json:"quantity" db:"quantity"`
	Unit         string               `json:"unit" db:"unit"`
	Reason       metadata.WasteReason `json:"reason" db:"reason"`
	LossValue    decimal.Decimal      `json:"loss_value" db:"loss_value"`
	Notes        string               `json:"notes,omitempty" db:"notes"`
	RecordedBy   *int                 `json:"recorded_by,omitempty" db:"recorded_by"`
	CreatedAt    time.Time            `json:"created_at" db:"created_at"`
}

func (w *WasteLog) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   w.ID,
		ResourceType: "waste_log",
	}
}
