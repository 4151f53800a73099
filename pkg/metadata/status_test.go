package metadata

import (
	"testing"
)

func TestNewOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid pending", "PENDING", false},
		{"valid approved", "APPROVED", false},
		{"valid partial", "PARTIAL", false},
		{"valid received", "RECEIVED", false},
		{"valid cancelled", "CANCELLED", false},
		{"lowercase rejected", "pending", true},
		{"unknown rejected", "SHIPPED", true},
		{"empty rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOrderStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		expected bool
	}{
		{OrderPending, false},
		{OrderApproved, false},
		{OrderPartial, false},
		{OrderReceived, true},
		{OrderCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTransferStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     TransferStatus
		to       TransferStatus
		expected bool
	}{
		{"pending to approved", TransferPending, TransferApproved, true},
		{"pending to completed skips approval", TransferPending, TransferCompleted, false},
		{"pending to cancelled", TransferPending, TransferCancelled, true},
		{"approved to in transit", TransferApproved, TransferInTransit, true},
		{"approved to completed requires transit", TransferApproved, TransferCompleted, false},
		{"approved back to pending", TransferApproved, TransferPending, false},
		{"in transit to completed", TransferInTransit, TransferCompleted, true},
		{"in transit to cancelled", TransferInTransit, TransferCancelled, true},
		{"completed is terminal", TransferCompleted, TransferCancelled, false},
		{"cancelled is terminal", TransferCancelled, TransferApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestNewTransactionType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid restock", "RESTOCK", false},
		{"valid waste", "WASTE", false},
		{"valid adjustment", "ADJUSTMENT", false},
		{"valid sale", "SALE", false},
		{"unknown rejected", "REFUND", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransactionType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTransactionType() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
