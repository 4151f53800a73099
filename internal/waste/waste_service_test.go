package waste

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
)

func TestRecordWasteValidation(t *testing.T) {
	service := &WasteService{}

	tests := []struct {
		name     string
		req      RecordWasteRequest
		property string
	}{
		{
			name: "unknown reason",
			req: RecordWasteRequest{
				BranchID:     1,
				IngredientID: 2,
				Quantity:     decimal.NewFromInt(3),
				Reason:       "EVAPORATED",
			},
			property: "reason",
		},
		{
			name: "zero quantity",
			req: RecordWasteRequest{
				BranchID:     1,
				IngredientID: 2,
				Quantity:     decimal.Zero,
				Reason:       "SPOILED",
			},
			property: "quantity",
		},
		{
			name: "negative quantity",
			req: RecordWasteRequest{
				BranchID:     1,
				IngredientID: 2,
				Quantity:     decimal.NewFromInt(-4),
				Reason:       "SPOILED",
			},
			property: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wasteLog, err := service.RecordWaste(tt.req, nil)

			assert.Nil(t, wasteLog)
			var validationErr *custom_error.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.property, validationErr.Property)
		})
	}
}

func TestWasteReason(t *testing.T) {
	tests := []struct {
		name     string
		reason   metadata.WasteReason
		notes    string
		expected string
	}{
		{"reason only", metadata.WasteSpoiled, "", "SPOILED"},
		{"reason with notes", metadata.WasteSpoiled, "left out overnight", "SPOILED: left out overnight"},
		{"whitespace notes dropped", metadata.WasteExpired, "   ", "EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wasteReason(tt.reason, tt.notes))
		})
	}
}
