package transfers

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

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) InsertTransferRecord(tx *goqu.TxDatabase, transfer models.InventoryTransfer) (int, error) {
	args := m.Called(tx, transfer)
	return args.Int(0), args.Error(1)
}

func (m *MockTransferRepository) InsertTransferItems(tx *goqu.TxDatabase, transferID int, items []models.InventoryTransferItem) error {
	args := m.Called(tx, transferID, items)
	return args.Error(0)
}

func (m *MockTransferRepository) GetTransfer(transferID int) (*models.InventoryTransfer, error) {
	args := m.Called(transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryTransfer), args.Error(1)
}

func (m *MockTransferRepository) GetTransferForUpdate(tx *goqu.TxDatabase, transferID int) (*models.InventoryTransfer, error) {
	args := m.Called(tx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryTransfer), args.Error(1)
}

func (m *MockTransferRepository) GetTransferItems(transferID int) ([]models.InventoryTransferItem, error) {
	args := m.Called(transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryTransferItem), args.Error(1)
}

func (m *MockTransferRepository) GetTransferItemsTx(tx *goqu.TxDatabase, transferID int) ([]models.InventoryTransferItem, error) {
	args := m.Called(tx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryTransferItem), args.Error(1)
}

func (m *MockTransferRepository) GetTransfers(conditions repository.QueryBuilder) ([]models.InventoryTransfer, error) {
	args := m.Called(conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryTransfer), args.Error(1)
}

func (m *MockTransferRepository) UpdateTransferStatus(tx *goqu.TxDatabase, transferID int, status metadata.TransferStatus) error {
	args := m.Called(tx, transferID, status)
	return args.Error(0)
}

func (m *MockTransferRepository) SetApproval(transferID int, approverID int) (bool, error) {
	args := m.Called(transferID, approverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransferRepository) SetCompletion(tx *goqu.TxDatabase, transferID int, completerID *int) error {
	args := m.Called(tx, transferID, completerID)
	return args.Error(0)
}

func (m *MockTransferRepository) UpdateNotes(tx *goqu.TxDatabase, transferID int, notes string) error {
	args := m.Called(tx, transferID, notes)
	return args.Error(0)
}

func (m *MockTransferRepository) SetItemTargetInventory(tx *goqu.TxDatabase, itemID int, targetInventoryID int) error {
	args := m.Called(tx, itemID, targetInventoryID)
	return args.Error(0)
}

func (m *MockTransferRepository) DeleteTransfer(tx *goqu.TxDatabase, transferID int) error {
	args := m.Called(tx, transferID)
	return args.Error(0)
}

type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) GetForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error) {
	args := m.Called(tx, branchID, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BranchInventory), args.Error(1)
}

func (m *MockStockLedger) GetOrCreateForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error) {
	args := m.Called(tx, branchID, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BranchInventory), args.Error(1)
}

func (m *MockStockLedger) EnsureRow(tx *goqu.TxDatabase, branchID, ingredientID int) error {
	args := m.Called(tx, branchID, ingredientID)
	return args.Error(0)
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

func TestCreateTransferValidation(t *testing.T) {
	service := &TransferService{}

	tests := []struct {
		name     string
		req      CreateTransferRequest
		property string
	}{
		{
			name: "same source and target branch",
			req: CreateTransferRequest{
				SourceBranchID: 1,
				TargetBranchID: 1,
				TransferNumber: "TR-2026-001",
				Items: []TransferItemRequest{
					{IngredientID: 1, Quantity: decimal.NewFromInt(5), Unit: "kg"},
				},
			},
			property: "target_branch_id",
		},
		{
			name: "empty items",
			req: CreateTransferRequest{
				SourceBranchID: 1,
				TargetBranchID: 2,
				TransferNumber: "TR-2026-001",
			},
			property: "items",
		},
		{
			name: "non-positive quantity",
			req: CreateTransferRequest{
				SourceBranchID: 1,
				TargetBranchID: 2,
				TransferNumber: "TR-2026-001",
				Items: []TransferItemRequest{
					{IngredientID: 1, Quantity: decimal.Zero, Unit: "kg"},
				},
			},
			property: "items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer, shortfalls, err := service.CreateTransfer(tt.req, nil)

			assert.Nil(t, transfer)
			assert.Nil(t, shortfalls)
			var validationErr *custom_error.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.property, validationErr.Property)
		})
	}
}

func TestUpdateTransferCompleteTwiceIsNoOp(t *testing.T) {
	transferRepo := new(MockTransferRepository)
	ledgerMock := new(MockStockLedger)
	service := &TransferService{r: stubTxRunner{}, tr: transferRepo, ledgerRepo: ledgerMock}

	completed := &models.InventoryTransfer{
		ID:             3,
		TransferNumber: "TR-2026-003",
		SourceBranchID: 1,
		TargetBranchID: 2,
		Status:         metadata.TransferCompleted,
	}
	transferRepo.On("GetTransferForUpdate", mock.Anything, 3).Return(completed, nil)
	transferRepo.On("GetTransfer", 3).Return(completed, nil)

	status := metadata.TransferCompleted.String()
	result, err := service.UpdateTransfer(3, UpdateTransferRequest{Status: &status}, nil)

	assert.NoError(t, err)
	assert.Equal(t, metadata.TransferCompleted, result.Status)
	ledgerMock.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	transferRepo.AssertNotCalled(t, "SetCompletion", mock.Anything, mock.Anything, mock.Anything)
	transferRepo.AssertNotCalled(t, "GetTransferItemsTx", mock.Anything, mock.Anything)
}

func TestDeleteTransferChecksStatusUnderLock(t *testing.T) {
	transferRepo := new(MockTransferRepository)
	service := &TransferService{r: stubTxRunner{}, tr: transferRepo}

	inTransit := &models.InventoryTransfer{ID: 4, TransferNumber: "TR-2026-004", Status: metadata.TransferInTransit}
	transferRepo.On("GetTransferForUpdate", mock.Anything, 4).Return(inTransit, nil)

	err := service.DeleteTransfer(4)

	var conflictErr *custom_error.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	transferRepo.AssertNotCalled(t, "DeleteTransfer", mock.Anything, mock.Anything)
}

func TestUpdateTransferNotesOnTerminalTransfer(t *testing.T) {
	tests := []struct {
		name   string
		status metadata.TransferStatus
	}{
		{"completed transfer", metadata.TransferCompleted},
		{"cancelled transfer", metadata.TransferCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transferRepo := new(MockTransferRepository)
			service := &TransferService{r: stubTxRunner{}, tr: transferRepo}

			transfer := &models.InventoryTransfer{ID: 5, TransferNumber: "TR-2026-005", Status: tt.status}
			transferRepo.On("GetTransferForUpdate", mock.Anything, 5).Return(transfer, nil)

			notes := "late edit"
			_, err := service.UpdateTransfer(5, UpdateTransferRequest{Notes: &notes}, nil)

			var conflictErr *custom_error.ConflictError
			assert.ErrorAs(t, err, &conflictErr)
			transferRepo.AssertNotCalled(t, "UpdateNotes", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
