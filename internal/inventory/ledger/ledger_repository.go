package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

// LedgerRepository owns the branch_inventory table and its append-only
// inventory_transactions audit trail. All stock deltas go through ApplyDelta
// inside a caller-provided transaction so the ledger and the trail cannot
// drift apart.
type LedgerRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *LedgerRepository {
	return &LedgerRepository{repository: r}
}

// InventoryView is the ledger row joined with its catalog entry, as rendered
// by the inventory listing and alert endpoints.
type InventoryView struct {
	ID               int              `db:"id" json:"id"`
	BranchID         int              `db:"branch_id" json:"branch_id"`
	IngredientID     int              `db:"ingredient_id" json:"ingredient_id"`
	IngredientName   string           `db:"ingredient_name" json:"ingredient_name"`
	Unit             string           `db:"unit" json:"unit"`
	CurrentStock     decimal.Decimal  `db:"current_stock" json:"current_stock"`
	ReservedStock    decimal.Decimal  `db:"reserved_stock" json:"reserved_stock"`
	AlertThreshold   decimal.Decimal  `db:"alert_threshold" json:"alert_threshold"`
	ReorderThreshold decimal.Decimal  `db:"reorder_threshold" json:"reorder_threshold"`
	CostPerUnit      decimal.Decimal  `db:"cost_per_unit" json:"cost_per_unit"`
	ExpiryDate       *time.Time       `db:"expiry_date" json:"expiry_date,omitempty"`
	LastRestockAt    *time.Time       `db:"last_restock_at" json:"last_restock_at,omitempty"`
	AvailableStock   decimal.Decimal  `db:"-" json:"available_stock"`
}

func (r *LedgerRepository) GetBranchInventory(conditions repository.QueryBuilder) (*[]InventoryView, error) {
	var views []InventoryView

	query := r.getInventoryQuery()
	if conditions.HasConditions() {
		aliases := map[string]string{
			"branch_id":     "bi.branch_id",
			"ingredient_id": "bi.ingredient_id",
		}
		query = query.Where(conditions.BuildConditions(aliases))
	}
	query = query.Order(goqu.I("bi.id").Asc())

	if err := query.Executor().ScanStructs(&views); err != nil {
		return nil, fmt.Errorf("unable to select branch inventory from database: %w", err)
	}

	for i := range views {
		views[i].AvailableStock = views[i].CurrentStock.Sub(views[i].ReservedStock)
	}

	return &views, nil
}

func (r *LedgerRepository) GetInventory(branchID, ingredientID int) (*models.BranchInventory, error) {
	var inventory models.BranchInventory

	found, err := r.repository.GoquDBWrapper.
		From("branch_inventory").
		Where(goqu.Ex{"branch_id": branchID, "ingredient_id": ingredientID}).
		Executor().
		ScanStruct(&inventory)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("inventory", fmt.Sprintf("branch %d / ingredient %d", branchID, ingredientID))
	}

	return &inventory, nil
}

// GetForUpdate locks the ledger row for the remainder of the transaction.
// Returns NotFoundError when the branch has never held the ingredient.
func (r *LedgerRepository) GetForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error) {
	var inventory models.BranchInventory

	found, err := tx.
		From("branch_inventory").
		Where(goqu.Ex{"branch_id": branchID, "ingredient_id": ingredientID}).
		ForUpdate(exp.Wait).
		Executor().
		ScanStruct(&inventory)
	if err != nil {
		return nil, fmt.Errorf("unable to lock inventory row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("inventory", fmt.Sprintf("branch %d / ingredient %d", branchID, ingredientID))
	}

	return &inventory, nil
}

// GetOrCreateForUpdate lazily creates a zero-stock ledger row on the first
// movement into a branch, then locks it. The (branch_id, ingredient_id)
// unique constraint makes concurrent first movements collapse onto one row.
func (r *LedgerRepository) GetOrCreateForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error) {
	if err := r.EnsureRow(tx, branchID, ingredientID); err != nil {
		return nil, err
	}

	return r.GetForUpdate(tx, branchID, ingredientID)
}

// EnsureRow pre-provisions a zero-stock row without touching existing stock.
func (r *LedgerRepository) EnsureRow(tx *goqu.TxDatabase, branchID, ingredientID int) error {
	query := `
		INSERT INTO branch_inventory (branch_id, ingredient_id, current_stock, reserved_stock)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (branch_id, ingredient_id) DO NOTHING;
	`
	if _, err := tx.Exec(query, branchID, ingredientID); err != nil {
		return fmt.Errorf("failed to provision inventory row: %w", err)
	}

	return nil
}

// planDelta computes the post-delta stock level and the transaction row that
// records it. The row always satisfies stock_after = stock_before + delta;
// any delta that would take the ledger negative is rejected here before
// anything is written.
func planDelta(
	inventory *models.BranchInventory,
	delta decimal.Decimal,
	transactionType metadata.TransactionType,
	reason string,
	userID *int,
) (decimal.Decimal, models.InventoryTransaction, error) {
	stockBefore := inventory.CurrentStock
	stockAfter := stockBefore.Add(delta)

	if stockAfter.IsNegative() {
		return decimal.Decimal{}, models.InventoryTransaction{}, custom_error.NewInsufficientStockError(inventory.IngredientID, stockBefore, delta.Neg())
	}

	return stockAfter, models.InventoryTransaction{
		BranchID:        inventory.BranchID,
		IngredientID:    inventory.IngredientID,
		TransactionType: transactionType,
		QuantityChange:  delta,
		StockBefore:     stockBefore,
		StockAfter:      stockAfter,
		Reason:          reason,
		CreatedBy:       userID,
	}, nil
}

// ApplyDelta moves the locked ledger row by delta and appends the matching
// inventory_transactions row with before/after snapshots.
func (r *LedgerRepository) ApplyDelta(
	tx *goqu.TxDatabase,
	inventory *models.BranchInventory,
	delta decimal.Decimal,
	transactionType metadata.TransactionType,
	reason string,
	userID *int,
) (*models.BranchInventory, error) {
	stockAfter, transaction, err := planDelta(inventory, delta, transactionType, reason, userID)
	if err != nil {
		return nil, err
	}

	record := goqu.Record{"current_stock": stockAfter}
	if transactionType == metadata.TransactionRestock {
		record["last_restock_at"] = goqu.L("NOW()")
	}

	updateResult, err := tx.Update("branch_inventory").
		Set(record).
		Where(goqu.Ex{"id": inventory.ID}).
		Where(goqu.L("current_stock + ? >= 0", delta)).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update ledger for inventory %d: %w", inventory.ID, err)
	}

	rowsAffected, err := updateResult.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewInsufficientStockError(inventory.IngredientID, transaction.StockBefore, delta.Neg())
	}

	if err := r.appendTransaction(tx, transaction); err != nil {
		return nil, err
	}

	updated := *inventory
	updated.CurrentStock = stockAfter
	return &updated, nil
}

func (r *LedgerRepository) appendTransaction(tx *goqu.TxDatabase, transaction models.InventoryTransaction) error {
	query := tx.Insert("inventory_transactions").
		Rows(goqu.Record{
			"branch_id":        transaction.BranchID,
			"ingredient_id":    transaction.IngredientID,
			"transaction_type": transaction.TransactionType.String(),
			"quantity_change":  transaction.QuantityChange,
			"stock_before":     transaction.StockBefore,
			"stock_after":      transaction.StockAfter,
			"reason":           transaction.Reason,
			"created_by":       transaction.CreatedBy,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to append inventory transaction: %w", err)
	}

	return nil
}

func (r *LedgerRepository) GetTransactions(conditions repository.QueryBuilder) (*[]models.InventoryTransaction, error) {
	var transactions []models.InventoryTransaction

	query := r.repository.GoquDBWrapper.
		From("inventory_transactions").
		Order(goqu.I("created_at").Desc())

	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(nil))
	}

	if err := query.Executor().ScanStructs(&transactions); err != nil {
		return nil, fmt.Errorf("unable to select inventory transactions: %w", err)
	}

	return &transactions, nil
}

// UpdateExpiryDate is an admin convenience for the expiry alerting view.
func (r *LedgerRepository) UpdateExpiryDate(inventoryID int, expiryDate *time.Time) error {
	result, err := r.repository.GoquDBWrapper.
		Update("branch_inventory").
		Set(goqu.Record{"expiry_date": expiryDate}).
		Where(goqu.Ex{"id": inventoryID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update expiry date: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("inventory", inventoryID)
	}

	return nil
}

func (r *LedgerRepository) getInventoryQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("bi.id").As("id"),
			goqu.I("bi.branch_id").As("branch_id"),
			goqu.I("bi.ingredient_id").As("ingredient_id"),
			goqu.I("i.name").As("ingredient_name"),
			goqu.I("i.unit").As("unit"),
			goqu.I("bi.current_stock").As("current_stock"),
			goqu.I("bi.reserved_stock").As("reserved_stock"),
			goqu.I("i.alert_threshold").As("alert_threshold"),
			goqu.I("i.reorder_threshold").As("reorder_threshold"),
			goqu.I("i.cost_per_unit").As("cost_per_unit"),
			goqu.I("bi.expiry_date").As("expiry_date"),
			goqu.I("bi.last_restock_at").As("last_restock_at"),
		).
		From(goqu.T("branch_inventory").As("bi")).
		LeftJoin(
			goqu.T("ingredients").As("i"),
			goqu.On(goqu.Ex{"bi.ingredient_id": goqu.I("i.id")}),
		)
}

// IsNotFound reports whether err is a missing-row condition from this
// repository.
func IsNotFound(err error) bool {
	var notFound *custom_error.NotFoundError
	return errors.As(err, &notFound) || errors.Is(err, sql.ErrNoRows)
}
