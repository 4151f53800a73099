package waste

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

type MockWasteService struct {
	mock.Mock
}

func (m *MockWasteService) RecordWaste(req RecordWasteRequest, userID *int) (*models.WasteLog, error) {
	args := m.Called(req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WasteLog), args.Error(1)
}

func (m *MockWasteService) GetWasteLogs(query ListWasteQuery) ([]models.WasteLog, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WasteLog), args.Error(1)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "user")
	return c, w
}

func TestRecordWasteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	payload := RecordWasteRequest{
		BranchID:     1,
		IngredientID: 2,
		Quantity:     decimal.NewFromInt(8),
		Reason:       "SPOILED",
	}

	tests := []struct {
		name           string
		setupMock      func(m *MockWasteService)
		expectedStatus int
		checkBody      func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful recording",
			setupMock: func(m *MockWasteService) {
				m.On("RecordWaste", mock.Anything, mock.Anything).Return(&models.WasteLog{
					ID:           1,
					BranchID:     1,
					IngredientID: 2,
					Quantity:     decimal.NewFromInt(8),
					Reason:       metadata.WasteSpoiled,
					LossValue:    decimal.NewFromInt(20),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "insufficient stock carries quantities",
			setupMock: func(m *MockWasteService) {
				m.On("RecordWaste", mock.Anything, mock.Anything).
					Return(nil, custom_error.NewInsufficientStockError(2, decimal.NewFromInt(5), decimal.NewFromInt(8)))
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "5", body["available"])
				assert.Equal(t, "8", body["requested"])
			},
		},
		{
			name: "missing inventory row",
			setupMock: func(m *MockWasteService) {
				m.On("RecordWaste", mock.Anything, mock.Anything).
					Return(nil, custom_error.NewNotFoundError("branch inventory", 2))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockWasteService)
			tt.setupMock(mockService)
			handler := NewHandler(mockService)

			c, w := setupTestContext()
			body, _ := json.Marshal(payload)
			c.Request = httptest.NewRequest("POST", "/waste-logs", bytes.NewBuffer(body))

			handler.RecordWaste(c)

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
