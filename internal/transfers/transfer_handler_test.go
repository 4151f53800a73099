package transfers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) CreateTransfer(req CreateTransferRequest, userID *int) (*models.InventoryTransfer, []StockShortfall, error) {
	args := m.Called(req, userID)
	var transfer *models.InventoryTransfer
	if args.Get(0) != nil {
		transfer = args.Get(0).(*models.InventoryTransfer)
	}
	var shortfalls []StockShortfall
	if args.Get(1) != nil {
		shortfalls = args.Get(1).([]StockShortfall)
	}
	return transfer, shortfalls, args.Error(2)
}

func (m *MockTransferService) ApproveTransfer(transferID int, approverID int) (*models.InventoryTransfer, error) {
	args := m.Called(transferID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryTransfer), args.Error(1)
}

func (m *MockTransferService) UpdateTransfer(transferID int, req UpdateTransferRequest, userID *int) (*models.InventoryTransfer, error) {
	args := m.Called(transferID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryTransfer), args.Error(1)
}

func (m *MockTransferService) DeleteTransfer(transferID int) error {
	args := m.Called(transferID)
	return args.Error(0)
}

func (m *MockTransferService) GetTransfer(transferID int) (*models.InventoryTransfer, error) {
	args := m.Called(transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryTransfer), args.Error(1)
}

func (m *MockTransferService) GetTransfers(sourceBranchID, targetBranchID *int, status string) ([]models.InventoryTransfer, error) {
	args := m.Called(sourceBranchID, targetBranchID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryTransfer), args.Error(1)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "admin")
	return c, w
}

func sampleTransfer(status metadata.TransferStatus) *models.InventoryTransfer {
	return &models.InventoryTransfer{
		ID:             1,
		TransferNumber: "TR-2026-001",
		SourceBranchID: 1,
		TargetBranchID: 2,
		Status:         status,
	}
}

func createPayload() CreateTransferRequest {
	return CreateTransferRequest{
		SourceBranchID: 1,
		TargetBranchID: 2,
		TransferNumber: "TR-2026-001",
		Items: []TransferItemRequest{
			{IngredientID: 1, Quantity: decimal.NewFromInt(5), Unit: "kg"},
		},
	}
}

func TestCreateTransferHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupMock      func(m *MockTransferService)
		expectedStatus int
		checkBody      func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful creation",
			setupMock: func(m *MockTransferService) {
				m.On("CreateTransfer", mock.Anything, mock.Anything).
					Return(sampleTransfer(metadata.TransferPending), nil, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "insufficient stock lists shortfalls",
			setupMock: func(m *MockTransferService) {
				shortfalls := []StockShortfall{
					{IngredientID: 1, Available: decimal.NewFromInt(2), Requested: decimal.NewFromInt(5)},
				}
				m.On("CreateTransfer", mock.Anything, mock.Anything).
					Return(nil, shortfalls, custom_error.NewValidationError("items", "insufficient stock at source branch"))
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				reasons, ok := body["reasons"].([]interface{})
				assert.True(t, ok, "expected reasons list in response")
				assert.Len(t, reasons, 1)
			},
		},
		{
			name: "duplicate transfer number",
			setupMock: func(m *MockTransferService) {
				m.On("CreateTransfer", mock.Anything, mock.Anything).
					Return(nil, nil, custom_error.WrapDBError("Duplicate transfer number", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTransferService)
			tt.setupMock(mockService)
			handler := NewHandler(mockService)

			c, w := setupTestContext()
			body, _ := json.Marshal(createPayload())
			c.Request = httptest.NewRequest("POST", "/transfers", bytes.NewBuffer(body))

			handler.CreateTransfer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkBody != nil {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				tt.checkBody(t, response)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestUpdateTransferHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	completed := "COMPLETED"

	tests := []struct {
		name           string
		body           UpdateTransferRequest
		setupMock      func(m *MockTransferService)
		expectedStatus int
	}{
		{
			name: "complete transfer",
			body: UpdateTransferRequest{Status: &completed},
			setupMock: func(m *MockTransferService) {
				m.On("UpdateTransfer", 1, mock.Anything, mock.Anything).
					Return(sampleTransfer(metadata.TransferCompleted), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "illegal transition",
			body: UpdateTransferRequest{Status: &completed},
			setupMock: func(m *MockTransferService) {
				m.On("UpdateTransfer", 1, mock.Anything, mock.Anything).
					Return(nil, custom_error.NewConflictError("transfer cannot move from CANCELLED to COMPLETED"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty update",
			body:           UpdateTransferRequest{},
			setupMock:      func(m *MockTransferService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTransferService)
			tt.setupMock(mockService)
			handler := NewHandler(mockService)

			c, w := setupTestContext()
			body, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("PUT", "/transfers/1", bytes.NewBuffer(body))
			c.Params = []gin.Param{{Key: "id", Value: "1"}}

			handler.UpdateTransfer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestDeleteTransferGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockService := new(MockTransferService)
	mockService.On("DeleteTransfer", 1).
		Return(custom_error.NewConflictError("only PENDING transfers can be deleted, current status is APPROVED"))
	handler := NewHandler(mockService)

	c, w := setupTestContext()
	c.Request = httptest.NewRequest("DELETE", "/transfers/1", nil)
	c.Params = []gin.Param{{Key: "id", Value: "1"}}

	handler.DeleteTransfer(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}
