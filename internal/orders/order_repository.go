package orders

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type OrderRepository interface {
	InsertOrderRecord(tx *goqu.TxDatabase, order models.PurchaseOrder) (int, error)
	InsertOrderItems(tx *goqu.TxDatabase, orderID int, items []models.PurchaseOrderItem) error
	GetOrder(orderID int) (*models.PurchaseOrder, error)
	GetOrderForUpdate(tx *goqu.TxDatabase, orderID int) (*models.PurchaseOrder, error)
	GetOrderItems(orderID int) ([]models.PurchaseOrderItem, error)
	GetOrderItemsForUpdate(tx *goqu.TxDatabase, orderID int) ([]models.PurchaseOrderItem, error)
	GetOrders(conditions repository.QueryBuilder, page, limit int) ([]models.PurchaseOrder, int64, error)
	UpdateOrderStatus(tx *goqu.TxDatabase, orderID int, status metadata.OrderStatus, markReceived bool) error
	UpdateOrderFields(tx *goqu.TxDatabase, orderID int, updates goqu.Record) error
	SetApproval(orderID int, approverID int) (bool, error)
	IncrementReceivedQty(tx *goqu.TxDatabase, itemID int, quantity decimal.Decimal) error
	DeleteOrder(tx *goqu.TxDatabase, orderID int) error
}

type orderRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) OrderRepository {
	return &orderRepository{repository: r}
}

func (r *orderRepository) InsertOrderRecord(tx *goqu.TxDatabase, order models.PurchaseOrder) (int, error) {
	query := tx.Insert("purchase_orders").
		Rows(goqu.Record{
			"order_number": order.OrderNumber,
			"supplier_id":  order.SupplierID,
			"branch_id":    order.BranchID,
			"status":       order.Status.String(),
			"total_amount": order.TotalAmount,
			"expected_at":  order.ExpectedAt,
			"created_by":   order.CreatedBy,
			"notes":        order.Notes,
		}).
		Returning("id")

	var orderID int
	if _, err := query.Executor().ScanVal(&orderID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Duplicate order number "+order.OrderNumber, string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert purchase order record: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) InsertOrderItems(tx *goqu.TxDatabase, orderID int, items []models.PurchaseOrderItem) error {
	var records []goqu.Record
	for _, item := range items {
		records = append(records, goqu.Record{
			"purchase_order_id": orderID,
			"ingredient_id":     item.IngredientID,
			"quantity":          item.Quantity,
			"unit":              item.Unit,
			"unit_price":        item.UnitPrice,
			"received_qty":      item.ReceivedQty,
		})
	}

	query := tx.Insert("purchase_order_items").Rows(records)

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("purchase order items", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert purchase order items: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrder(orderID int) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder

	found, err := r.repository.GoquDBWrapper.
		From("purchase_orders").
		Where(goqu.Ex{"id": orderID}).
		Executor().
		ScanStruct(&order)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("purchase order", orderID)
	}

	items, err := r.GetOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *orderRepository) GetOrderForUpdate(tx *goqu.TxDatabase, orderID int) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder

	found, err := tx.
		From("purchase_orders").
		Where(goqu.Ex{"id": orderID}).
		ForUpdate(exp.Wait).
		Executor().
		ScanStruct(&order)
	if err != nil {
		return nil, fmt.Errorf("unable to lock purchase order row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("purchase order", orderID)
	}

	return &order, nil
}

func (r *orderRepository) GetOrderItems(orderID int) ([]models.PurchaseOrderItem, error) {
	var items []models.PurchaseOrderItem

	query := r.repository.GoquDBWrapper.
		From("purchase_order_items").
		Where(goqu.Ex{"purchase_order_id": orderID}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select purchase order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) GetOrderItemsForUpdate(tx *goqu.TxDatabase, orderID int) ([]models.PurchaseOrderItem, error) {
	var items []models.PurchaseOrderItem

	query := tx.
		From("purchase_order_items").
		Where(goqu.Ex{"purchase_order_id": orderID}).
		Order(goqu.I("id").Asc()).
		ForUpdate(exp.Wait)

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to lock purchase order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) GetOrders(conditions repository.QueryBuilder, page, limit int) ([]models.PurchaseOrder, int64, error) {
	var orders []models.PurchaseOrder

	baseQuery := r.repository.GoquDBWrapper.From("purchase_orders")
	if conditions.HasConditions() {
		baseQuery = baseQuery.Where(conditions.BuildConditions(nil))
	}

	var total int64
	if _, err := baseQuery.Select(goqu.COUNT("id")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count purchase orders: %w", err)
	}

	query := baseQuery.
		Order(goqu.I("ordered_at").Desc()).
		Limit(uint(limit)).
		Offset(uint((page - 1) * limit))

	if err := query.Executor().ScanStructs(&orders); err != nil {
		return nil, 0, fmt.Errorf("unable to select purchase orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(tx *goqu.TxDatabase, orderID int, status metadata.OrderStatus, markReceived bool) error {
	record := goqu.Record{"status": status.String()}
	if markReceived {
		record["received_at"] = goqu.L("NOW()")
	}

	query := tx.Update("purchase_orders").
		Set(record).
		Where(goqu.Ex{"id": orderID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update purchase order %d status: %w", orderID, err)
	}

	return nil
}

func (r *orderRepository) UpdateOrderFields(tx *goqu.TxDatabase, orderID int, updates goqu.Record) error {
	result, err := tx.
		Update("purchase_orders").
		Set(updates).
		Where(goqu.Ex{"id": orderID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update purchase order %d: %w", orderID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("purchase order", orderID)
	}

	return nil
}

// SetApproval is the set-once approval write: approved_by/approved_at only
// move when they are still empty. Returns false when the order was approved
// before, without touching the original approver.
func (r *orderRepository) SetApproval(orderID int, approverID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Update("purchase_orders").
		Set(goqu.Record{
			"status":      metadata.OrderApproved.String(),
			"approved_by": approverID,
			"approved_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": orderID, "status": metadata.OrderPending.String()}).
		Where(goqu.I("approved_at").IsNull()).
		Executor().
		Exec()
	if err != nil {
		return false, fmt.Errorf("failed to approve purchase order %d: %w", orderID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementReceivedQty accumulates receipts; the guard keeps the cumulative
// quantity inside the ordered amount even under concurrent receives.
func (r *orderRepository) IncrementReceivedQty(tx *goqu.TxDatabase, itemID int, quantity decimal.Decimal) error {
	updateResult, err := tx.Update("purchase_order_items").
		Set(goqu.Record{"received_qty": goqu.L("received_qty + ?", quantity)}).
		Where(goqu.Ex{"id": itemID}).
		Where(goqu.L("received_qty + ? <= quantity", quantity)).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to increment received quantity for item %d: %w", itemID, err)
	}

	rowsAffected, err := updateResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewValidationError("items", fmt.Sprintf("received quantity exceeds ordered quantity for item %d", itemID))
	}

	return nil
}

func (r *orderRepository) DeleteOrder(tx *goqu.TxDatabase, orderID int) error {
	if _, err := tx.Delete("purchase_order_items").
		Where(goqu.Ex{"purchase_order_id": orderID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to delete purchase order items: %w", err)
	}

	if _, err := tx.Delete("purchase_orders").
		Where(goqu.Ex{"id": orderID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	return nil
}
