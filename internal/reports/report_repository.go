package reports

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/internal/repository"
)

type ReportRepository struct {
	Repository *repository.Repository
}

func NewReportRepository(r *repository.Repository) *ReportRepository {
	return &ReportRepository{Repository: r}
}

// InventoryReportRow is one ingredient's position in the branch inventory
// report, valued at the catalog's current cost per unit.
type InventoryReportRow struct {
	IngredientID   int             `json:"ingredient_id" db:"ingredient_id"`
	IngredientName string          `json:"ingredient_name" db:"ingredient_name"`
	Unit           string          `json:"unit" db:"unit"`
	CurrentStock   decimal.Decimal `json:"current_stock" db:"current_stock"`
	StockValue     decimal.Decimal `json:"stock_value" db:"stock_value"`
}

type WasteReportRow struct {
	Reason    string          `json:"reason" db:"reason"`
	Incidents int             `json:"incidents" db:"incidents"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	LossValue decimal.Decimal `json:"loss_value" db:"loss_value"`
}

type PurchaseReportRow struct {
	Status      string          `json:"status" db:"status"`
	Orders      int             `json:"orders" db:"orders"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
}

func (r *ReportRepository) GetInventoryReport(branchID int) ([]InventoryReportRow, error) {
	var rows []InventoryReportRow
	query := r.Repository.GoquDBWrapper.
		From(goqu.T("branch_inventory").As("bi")).
		Select(
			goqu.I("bi.ingredient_id").As("ingredient_id"),
			goqu.I("ing.name").As("ingredient_name"),
			goqu.I("ing.unit").As("unit"),
			goqu.I("bi.current_stock").As("current_stock"),
			goqu.L("bi.current_stock * ing.cost_per_unit").As("stock_value"),
		).
		Join(
			goqu.T("ingredients").As("ing"),
			goqu.On(goqu.Ex{"bi.ingredient_id": goqu.I("ing.id")}),
		).
		Where(goqu.Ex{"bi.branch_id": branchID}).
		Order(goqu.I("ing.name").Asc())

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to build inventory report: %w", err)
	}

	return rows, nil
}

func (r *ReportRepository) GetWasteReport(branchID int, startDate, endDate time.Time) ([]WasteReportRow, error) {
	var rows []WasteReportRow
	query := r.Repository.GoquDBWrapper.
		From("waste_logs").
		Select(
			goqu.I("reason").As("reason"),
			goqu.COUNT("id").As("incidents"),
			goqu.SUM("quantity").As("quantity"),
			goqu.SUM("loss_value").As("loss_value"),
		).
		Where(goqu.Ex{"branch_id": branchID}).
		Where(goqu.I("created_at").Gte(startDate)).
		Where(goqu.I("created_at").Lt(endDate)).
		GroupBy("reason").
		Order(goqu.I("loss_value").Desc())

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to build waste report: %w", err)
	}

	return rows, nil
}

func (r *ReportRepository) GetPurchaseReport(branchID int, startDate, endDate time.Time) ([]PurchaseReportRow, error) {
	var rows []PurchaseReportRow
	query := r.Repository.GoquDBWrapper.
		From("purchase_orders").
		Select(
			goqu.I("status").As("status"),
			goqu.COUNT("id").As("orders"),
			goqu.SUM("total_amount").As("total_amount"),
		).
		Where(goqu.Ex{"branch_id": branchID}).
		Where(goqu.I("ordered_at").Gte(startDate)).
		Where(goqu.I("ordered_at").Lt(endDate)).
		GroupBy("status").
		Order(goqu.I("status").Asc())

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to build purchase report: %w", err)
	}

	return rows, nil
}
