package orders

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) InsertOrderRecord(tx *goqu.TxDatabase, order models.PurchaseOrder) (int, error) {
	args := m.Called(tx, order)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) InsertOrderItems(tx *goqu.TxDatabase, orderID int, items []models.PurchaseOrderItem) error {
	args := m.Called(tx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrder(orderID int) (*models.PurchaseOrder, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) GetOrderForUpdate(tx *goqu.TxDatabase, orderID int) (*models.PurchaseOrder, error) {
	args := m.Called(tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) GetOrderItems(orderID int) ([]models.PurchaseOrderItem, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PurchaseOrderItem), args.Error(1)
}

func (m *MockOrderRepository) GetOrderItemsForUpdate(tx *goqu.TxDatabase, orderID int) ([]models.PurchaseOrderItem, error) {
	args := m.Called(tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PurchaseOrderItem), args.Error(1)
}

func (m *MockOrderRepository) GetOrders(conditions repository.QueryBuilder, page, limit int) ([]models.PurchaseOrder, int64, error) {
	args := m.Called(conditions, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateOrderStatus(tx *goqu.TxDatabase, orderID int, status metadata.OrderStatus, markReceived bool) error {
	args := m.Called(tx, orderID, status, markReceived)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderFields(tx *goqu.TxDatabase, orderID int, updates goqu.Record) error {
	args := m.Called(tx, orderID, updates)
	return args.Error(0)
}

func (m *MockOrderRepository) SetApproval(orderID int, approverID int) (bool, error) {
	args := m.Called(orderID, approverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) IncrementReceivedQty(tx *goqu.TxDatabase, itemID int, quantity decimal.Decimal) error {
	args := m.Called(tx, itemID, quantity)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrder(tx *goqu.TxDatabase, orderID int) error {
	args := m.Called(tx, orderID)
	return args.Error(0)
}

type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) GetOrCreateForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error) {
	args := m.Called(tx, branchID, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BranchInventory), args.Error(1)
}

func (m *MockStockLedger) ApplyDelta(tx *goqu.TxDatabase, inventory *models.BranchInventory, delta decimal.Decimal, transactionType metadata.TransactionType, reason string, userID *int) (*models.BranchInventory, error) {
	args := m.Called(tx, inventory, delta, transactionType, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BranchInventory), args.Error(1)
}

type stubTxRunner struct{}

func (stubTxRunner) RunTx(fn func(tx *goqu.TxDatabase) error) error {
	return fn(nil)
}

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeOrderTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []OrderItemRequest
		expected string
	}{
		{
			name: "single item",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: dec("10"), UnitPrice: dec("2.5")},
			},
			expected: "25",
		},
		{
			name: "multiple items",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: dec("10"), UnitPrice: dec("2.5")},
				{IngredientID: 2, Quantity: dec("3"), UnitPrice: dec("1.2")},
			},
			expected: "28.6",
		},
		{
			name: "fractional quantities",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: dec("0.5"), UnitPrice: dec("4.99")},
			},
			expected: "2.495",
		},
		{
			name:     "no items",
			items:    nil,
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := computeOrderTotal(tt.items)
			assert.True(t, total.Equal(dec(tt.expected)), "computeOrderTotal() = %s, want %s", total, tt.expected)
		})
	}
}

func TestValidateOrderItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []OrderItemRequest
		wantErr bool
	}{
		{
			name: "valid items",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: dec("10"), Unit: "kg", UnitPrice: dec("2.5")},
			},
			wantErr: false,
		},
		{
			name:    "empty items",
			items:   nil,
			wantErr: true,
		},
		{
			name: "zero quantity",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: decimal.Zero, Unit: "kg", UnitPrice: dec("2.5")},
			},
			wantErr: true,
		},
		{
			name: "negative quantity",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: dec("-1"), Unit: "kg", UnitPrice: dec("2.5")},
			},
			wantErr: true,
		},
		{
			name: "zero unit price",
			items: []OrderItemRequest{
				{IngredientID: 1, Quantity: dec("5"), Unit: "kg", UnitPrice: decimal.Zero},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOrderItems(tt.items)
			if tt.wantErr {
				assert.Error(t, err)
				var validationErr *custom_error.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecomputeOrderStatus(t *testing.T) {
	item := func(ordered, received string) models.PurchaseOrderItem {
		return models.PurchaseOrderItem{Quantity: dec(ordered), ReceivedQty: dec(received)}
	}

	tests := []struct {
		name             string
		current          metadata.OrderStatus
		items            []models.PurchaseOrderItem
		expectedStatus   metadata.OrderStatus
		expectedReceived bool
	}{
		{
			name:             "all items fully received",
			current:          metadata.OrderPending,
			items:            []models.PurchaseOrderItem{item("10", "10"), item("5", "5")},
			expectedStatus:   metadata.OrderReceived,
			expectedReceived: true,
		},
		{
			name:             "partial receipt from pending",
			current:          metadata.OrderPending,
			items:            []models.PurchaseOrderItem{item("10", "4"), item("5", "0")},
			expectedStatus:   metadata.OrderPartial,
			expectedReceived: false,
		},
		{
			name:             "partial receipt from approved",
			current:          metadata.OrderApproved,
			items:            []models.PurchaseOrderItem{item("10", "4")},
			expectedStatus:   metadata.OrderPartial,
			expectedReceived: false,
		},
		{
			name:             "already partial stays partial",
			current:          metadata.OrderPartial,
			items:            []models.PurchaseOrderItem{item("10", "6")},
			expectedStatus:   metadata.OrderPartial,
			expectedReceived: false,
		},
		{
			name:             "nothing received keeps status",
			current:          metadata.OrderApproved,
			items:            []models.PurchaseOrderItem{item("10", "0")},
			expectedStatus:   metadata.OrderApproved,
			expectedReceived: false,
		},
		{
			name:             "over-covered items count as received",
			current:          metadata.OrderPartial,
			items:            []models.PurchaseOrderItem{item("10", "10"), item("5", "5")},
			expectedStatus:   metadata.OrderReceived,
			expectedReceived: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, markReceived := recomputeOrderStatus(tt.current, tt.items)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedReceived, markReceived)
		})
	}
}

func TestReceiveOrderRejectsOverReceipt(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	ledgerMock := new(MockStockLedger)
	service := &OrderService{r: stubTxRunner{}, or: orderRepo, ledgerRepo: ledgerMock}

	order := &models.PurchaseOrder{
		ID:          7,
		OrderNumber: "PO-2026-007",
		BranchID:    1,
		Status:      metadata.OrderPartial,
	}
	items := []models.PurchaseOrderItem{
		{ID: 11, IngredientID: 3, Quantity: dec("10"), ReceivedQty: dec("8")},
	}

	orderRepo.On("GetOrderForUpdate", mock.Anything, 7).Return(order, nil)
	orderRepo.On("GetOrderItemsForUpdate", mock.Anything, 7).Return(items, nil)

	_, err := service.ReceiveOrder(7, ReceiveOrderRequest{
		Items: []ReceiveItemRequest{{ItemID: 11, ReceivedQty: dec("5")}},
	}, nil)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items", validationErr.Property)
	ledgerMock.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "IncrementReceivedQty", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveOrderIdempotent(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := &OrderService{r: stubTxRunner{}, or: orderRepo}

	order := &models.PurchaseOrder{ID: 4, OrderNumber: "PO-2026-004", Status: metadata.OrderApproved}
	orderRepo.On("GetOrder", 4).Return(order, nil)

	approved, err := service.ApproveOrder(4, 9)

	assert.NoError(t, err)
	assert.Equal(t, order, approved)
	orderRepo.AssertNotCalled(t, "SetApproval", mock.Anything, mock.Anything)
}

func TestApproveOrderLostRaceKeepsFirstApprover(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := &OrderService{r: stubTxRunner{}, or: orderRepo}

	pending := &models.PurchaseOrder{ID: 4, OrderNumber: "PO-2026-004", Status: metadata.OrderPending}
	orderRepo.On("GetOrder", 4).Return(pending, nil)
	orderRepo.On("SetApproval", 4, 9).Return(false, nil)

	_, err := service.ApproveOrder(4, 9)

	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestCancelOrderChecksStatusUnderLock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := &OrderService{r: stubTxRunner{}, or: orderRepo}

	received := &models.PurchaseOrder{ID: 5, OrderNumber: "PO-2026-005", Status: metadata.OrderReceived}
	orderRepo.On("GetOrderForUpdate", mock.Anything, 5).Return(received, nil)

	cancelled := metadata.OrderCancelled.String()
	_, err := service.UpdateOrder(5, UpdateOrderRequest{Status: &cancelled})

	var conflictErr *custom_error.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	orderRepo.AssertNotCalled(t, "UpdateOrderFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteOrderChecksStatusUnderLock(t *testing.T) {
	tests := []struct {
		name         string
		status       metadata.OrderStatus
		wantConflict bool
	}{
		{"pending order deletes", metadata.OrderPending, false},
		{"partial order refuses", metadata.OrderPartial, true},
		{"received order refuses", metadata.OrderReceived, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			service := &OrderService{r: stubTxRunner{}, or: orderRepo}

			order := &models.PurchaseOrder{ID: 6, OrderNumber: "PO-2026-006", Status: tt.status}
			orderRepo.On("GetOrderForUpdate", mock.Anything, 6).Return(order, nil)
			if !tt.wantConflict {
				orderRepo.On("DeleteOrder", mock.Anything, 6).Return(nil)
			}

			err := service.DeleteOrder(6)

			if tt.wantConflict {
				var conflictErr *custom_error.ConflictError
				assert.ErrorAs(t, err, &conflictErr)
				orderRepo.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				orderRepo.AssertExpectations(t)
			}
		})
	}
}
