package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

const expiryWarningWindow = 3 * 24 * time.Hour

type AlertType string

const (
	AlertLowStock AlertType = "LOW_STOCK"
	AlertReorder  AlertType = "REORDER"
	AlertExpiring AlertType = "EXPIRING"
	AlertExpired  AlertType = "EXPIRED"
)

type Alert struct {
	Type           AlertType       `json:"type"`
	BranchID       int             `json:"branch_id"`
	IngredientID   int             `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	Threshold      decimal.Decimal `json:"threshold"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
}

type AlertSummary struct {
	Total    int `json:"total"`
	LowStock int `json:"low_stock"`
	Reorder  int `json:"reorder"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// BuildAlerts runs the threshold comparison over the branch ledger. A row can
// raise several alerts at once (low stock and expired, for example).
func BuildAlerts(views []InventoryView, now time.Time) ([]Alert, AlertSummary) {
	alerts := []Alert{}
	var summary AlertSummary

	for _, view := range views {
		available := view.CurrentStock.Sub(view.ReservedStock)

		if available.LessThanOrEqual(view.AlertThreshold) {
			alerts = append(alerts, alertFromView(AlertLowStock, view, available, view.AlertThreshold))
			summary.LowStock++
		} else if available.LessThanOrEqual(view.ReorderThreshold) {
			alerts = append(alerts, alertFromView(AlertReorder, view, available, view.ReorderThreshold))
			summary.Reorder++
		}

		if view.ExpiryDate != nil {
			if view.ExpiryDate.Before(now) {
				alerts = append(alerts, alertFromView(AlertExpired, view, available, decimal.Zero))
				summary.Expired++
			} else if view.ExpiryDate.Sub(now) <= expiryWarningWindow {
				alerts = append(alerts, alertFromView(AlertExpiring, view, available, decimal.Zero))
				summary.Expiring++
			}
		}
	}

	summary.Total = len(alerts)
	return alerts, summary
}

func alertFromView(alertType AlertType, view InventoryView, available, threshold decimal.Decimal) Alert {
	return Alert{
		Type:           alertType,
		BranchID:       view.BranchID,
		IngredientID:   view.IngredientID,
		IngredientName: view.IngredientName,
		Unit:           view.Unit,
		AvailableStock: available,
		Threshold:      threshold,
		ExpiryDate:     view.ExpiryDate,
	}
}
