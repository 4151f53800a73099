package orders

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/auditlog"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

// StockLedger is the slice of the inventory ledger the order engine needs to
// book received quantities into a branch.
type StockLedger interface {
	GetOrCreateForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error)
	ApplyDelta(tx *goqu.TxDatabase, inventory *models.BranchInventory, delta decimal.Decimal, transactionType metadata.TransactionType, reason string, userID *int) (*models.BranchInventory, error)
}

type txRunner interface {
	RunTx(fn func(tx *goqu.TxDatabase) error) error
}

type OrderService struct {
	r          txRunner
	or         OrderRepository
	ledgerRepo StockLedger
	auditLog   *auditlog.Auditlog
}

func NewService(r *repository.Repository, or OrderRepository, lr StockLedger, a *auditlog.Auditlog) *OrderService {
	return &OrderService{
		r:          r,
		or:         or,
		ledgerRepo: lr,
		auditLog:   a,
	}
}

// CreateOrder persists the order and its items as one unit. totalAmount is
// computed here, at creation, and never recomputed afterwards.
func (s *OrderService) CreateOrder(req CreateOrderRequest, userID *int) (*models.PurchaseOrder, error) {
	if err := validateOrderItems(req.Items); err != nil {
		return nil, err
	}

	order := models.PurchaseOrder{
		OrderNumber: req.OrderNumber,
		SupplierID:  req.SupplierID,
		BranchID:    req.BranchID,
		Status:      metadata.OrderPending,
		TotalAmount: computeOrderTotal(req.Items),
		ExpectedAt:  req.ExpectedAt,
		CreatedBy:   userID,
		Notes:       req.Notes,
	}

	var orderID int
	err := s.r.RunTx(func(tx *goqu.TxDatabase) error {
		var err error
		if orderID, err = s.or.InsertOrderRecord(tx, order); err != nil {
			return err
		}

		items := make([]models.PurchaseOrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.PurchaseOrderItem{
				IngredientID: item.IngredientID,
				Quantity:     item.Quantity,
				Unit:         item.Unit,
				UnitPrice:    item.UnitPrice,
				ReceivedQty:  decimal.Zero,
			})
		}

		return s.or.InsertOrderItems(tx, orderID, items)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.or.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"order_number": created.OrderNumber,
			"supplier_id":  created.SupplierID,
			"branch_id":    created.BranchID,
			"total_amount": created.TotalAmount,
			"msg":          "Purchase order created",
		},
		created,
	)

	return created, nil
}

// ApproveOrder sets approved_by/approved_at once. Calling it again on an
// approved order is a no-op that returns the order unchanged; approving a
// cancelled or received order is rejected.
func (s *OrderService) ApproveOrder(orderID int, approverID int) (*models.PurchaseOrder, error) {
	order, err := s.or.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case metadata.OrderApproved:
		return order, nil
	case metadata.OrderPending:
		// fallthrough to the set-once write
	default:
		return nil, custom_error.NewConflictError(
			fmt.Sprintf("cannot approve purchase order in status %s", order.Status),
		)
	}

	approved, err := s.or.SetApproval(orderID, approverID)
	if err != nil {
		return nil, err
	}

	if approved {
		go s.auditLog.Log(
			"approve",
			map[string]interface{}{
				"order_number": order.OrderNumber,
				"approved_by":  approverID,
				"msg":          "Purchase order approved",
			},
			order,
		)
	}

	return s.or.GetOrder(orderID)
}

// ReceiveOrder applies delivered quantities to the branch ledger. The whole
// batch runs in one transaction: ledger rows are locked, every delta writes a
// RESTOCK transaction row, receipts accumulate on the items and the status is
// recomputed from the new cumulative quantities. An unknown item id or an
// over-receipt rejects the whole batch.
func (s *OrderService) ReceiveOrder(orderID int, req ReceiveOrderRequest, userID *int) (*models.PurchaseOrder, error) {
	if len(req.Items) == 0 {
		return nil, custom_error.NewValidationError("items", "received items must not be empty")
	}

	err := s.r.RunTx(func(tx *goqu.TxDatabase) error {
		order, err := s.or.GetOrderForUpdate(tx, orderID)
		if err != nil {
			return err
		}

		if order.Status == metadata.OrderCancelled {
			return custom_error.NewConflictError("cannot receive items for a cancelled purchase order")
		}
		if order.Status == metadata.OrderReceived {
			return custom_error.NewConflictError("purchase order is already fully received")
		}

		items, err := s.or.GetOrderItemsForUpdate(tx, orderID)
		if err != nil {
			return err
		}

		itemsByID := make(map[int]*models.PurchaseOrderItem, len(items))
		for i := range items {
			itemsByID[items[i].ID] = &items[i]
		}

		for _, received := range req.Items {
			item, ok := itemsByID[received.ItemID]
			if !ok {
				return custom_error.NewValidationError("items", fmt.Sprintf("item %d does not belong to purchase order %d", received.ItemID, orderID))
			}
			if !received.ReceivedQty.IsPositive() {
				return custom_error.NewValidationError("items", fmt.Sprintf("received quantity for item %d must be positive", received.ItemID))
			}
			if item.ReceivedQty.Add(received.ReceivedQty).GreaterThan(item.Quantity) {
				return custom_error.NewValidationError("items", fmt.Sprintf("received quantity exceeds ordered quantity for item %d", received.ItemID))
			}

			inventory, err := s.ledgerRepo.GetOrCreateForUpdate(tx, order.BranchID, item.IngredientID)
			if err != nil {
				return err
			}

			reason := fmt.Sprintf("Purchase order %s receipt", order.OrderNumber)
			if _, err := s.ledgerRepo.ApplyDelta(tx, inventory, received.ReceivedQty, metadata.TransactionRestock, reason, userID); err != nil {
				return err
			}

			if err := s.or.IncrementReceivedQty(tx, item.ID, received.ReceivedQty); err != nil {
				return err
			}

			item.ReceivedQty = item.ReceivedQty.Add(received.ReceivedQty)
		}

		newStatus, markReceived := recomputeOrderStatus(order.Status, items)
		if newStatus != order.Status {
			if err := s.or.UpdateOrderStatus(tx, orderID, newStatus, markReceived); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.or.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"receive",
		map[string]interface{}{
			"order_number": updated.OrderNumber,
			"status":       updated.Status,
			"msg":          "Purchase order items received into branch inventory",
		},
		updated,
	)

	return updated, nil
}

// UpdateOrder covers notes/expected date edits and the cancel transition.
// Terminal orders are immutable. The terminal check runs on the locked row
// so a receive committing RECEIVED concurrently cannot be overwritten to
// CANCELLED afterwards.
func (s *OrderService) UpdateOrder(orderID int, req UpdateOrderRequest) (*models.PurchaseOrder, error) {
	updates := goqu.Record{}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.ExpectedAt != nil {
		updates["expected_at"] = *req.ExpectedAt
	}
	if req.Status != nil {
		status, err := metadata.NewOrderStatus(*req.Status)
		if err != nil {
			return nil, custom_error.NewValidationError("status", err.Error())
		}
		if status != metadata.OrderCancelled {
			return nil, custom_error.NewValidationError("status", "only the CANCELLED transition is supported here; receiving drives the other statuses")
		}
		updates["status"] = status.String()
	}

	if len(updates) == 0 {
		return nil, custom_error.NewValidationError("body", "no fields to update")
	}

	err := s.r.RunTx(func(tx *goqu.TxDatabase) error {
		order, err := s.or.GetOrderForUpdate(tx, orderID)
		if err != nil {
			return err
		}

		if order.Status.IsTerminal() {
			return custom_error.NewConflictError(
				fmt.Sprintf("purchase order in status %s can no longer be updated", order.Status),
			)
		}

		return s.or.UpdateOrderFields(tx, orderID, updates)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.or.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		go s.auditLog.Log(
			"cancel",
			map[string]interface{}{
				"order_number": updated.OrderNumber,
				"msg":          "Purchase order cancelled",
			},
			updated,
		)
	}

	return updated, nil
}

// DeleteOrder is permitted only while the order is still PENDING. The status
// check runs on the locked row so a receipt landing concurrently blocks the
// delete instead of losing its ledger trail.
func (s *OrderService) DeleteOrder(orderID int) error {
	return s.r.RunTx(func(tx *goqu.TxDatabase) error {
		order, err := s.or.GetOrderForUpdate(tx, orderID)
		if err != nil {
			return err
		}

		if order.Status != metadata.OrderPending {
			return custom_error.NewConflictError(
				fmt.Sprintf("only PENDING purchase orders can be deleted, current status is %s", order.Status),
			)
		}

		return s.or.DeleteOrder(tx, orderID)
	})
}

func (s *OrderService) GetOrder(orderID int) (*models.PurchaseOrder, error) {
	return s.or.GetOrder(orderID)
}

func (s *OrderService) GetOrders(query ListOrdersQuery) ([]models.PurchaseOrder, int64, error) {
	conditions := repository.NewQueryBuilder()
	if query.BranchID != nil {
		conditions.AddCondition("branch_id", *query.BranchID)
	}
	if query.SupplierID != nil {
		conditions.AddCondition("supplier_id", *query.SupplierID)
	}
	if query.Status != "" {
		status, err := metadata.NewOrderStatus(query.Status)
		if err != nil {
			return nil, 0, custom_error.NewValidationError("status", err.Error())
		}
		conditions.AddCondition("status", status.String())
	}

	return s.or.GetOrders(conditions, query.Page, query.Limit)
}

func computeOrderTotal(items []OrderItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return total
}

func validateOrderItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return custom_error.NewValidationError("items", "purchase order must contain at least one item")
	}

	for _, item := range items {
		if !item.Quantity.IsPositive() {
			return custom_error.NewValidationError("items", fmt.Sprintf("quantity for ingredient %d must be positive", item.IngredientID))
		}
		if !item.UnitPrice.IsPositive() {
			return custom_error.NewValidationError("items", fmt.Sprintf("unit price for ingredient %d must be positive", item.IngredientID))
		}
	}

	return nil
}

// recomputeOrderStatus derives the order status from the new cumulative
// received quantities.
func recomputeOrderStatus(current metadata.OrderStatus, items []models.PurchaseOrderItem) (metadata.OrderStatus, bool) {
	allReceived := true
	anyReceived := false

	for i := range items {
		if !items[i].FullyReceived() {
			allReceived = false
		}
		if items[i].ReceivedQty.IsPositive() {
			anyReceived = true
		}
	}

	if allReceived {
		return metadata.OrderReceived, true
	}
	if anyReceived && (current == metadata.OrderPending || current == metadata.OrderApproved) {
		return metadata.OrderPartial, false
	}

	return current, false
}
