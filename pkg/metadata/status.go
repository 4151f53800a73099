package metadata

import "fmt"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderApproved  OrderStatus = "APPROVED"
	OrderPartial   OrderStatus = "PARTIAL"
	OrderReceived  OrderStatus = "RECEIVED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func NewOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid order status: %s", value)
	}
	return status, nil
}

func (s OrderStatus) isValid() bool {
	switch s {
	case OrderPending, OrderApproved, OrderPartial, OrderReceived, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further mutation is permitted on the order.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderReceived || s == OrderCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferApproved  TransferStatus = "APPROVED"
	TransferInTransit TransferStatus = "IN_TRANSIT"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferCancelled TransferStatus = "CANCELLED"
)

func NewTransferStatus(value string) (TransferStatus, error) {
	status := TransferStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid transfer status: %s", value)
	}
	return status, nil
}

func (s TransferStatus) isValid() bool {
	switch s {
	case TransferPending, TransferApproved, TransferInTransit, TransferCompleted, TransferCancelled:
		return true
	default:
		return false
	}
}

func (s TransferStatus) IsTerminal() bool {
	return s == TransferCompleted || s == TransferCancelled
}

// CanTransitionTo models the linear transfer lifecycle. CANCELLED stays
// reachable from any non-terminal status.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == TransferCancelled {
		return true
	}
	switch s {
	case TransferPending:
		return next == TransferApproved
	case TransferApproved:
		return next == TransferInTransit
	case TransferInTransit:
		return next == TransferCompleted
	default:
		return false
	}
}

func (s TransferStatus) String() string {
	return string(s)
}

type TransactionType string

const (
	TransactionRestock    TransactionType = "RESTOCK"
	TransactionWaste      TransactionType = "WASTE"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
	TransactionSale       TransactionType = "SALE"
)

func NewTransactionType(value string) (TransactionType, error) {
	transactionType := TransactionType(value)
	if !transactionType.isValid() {
		return "", fmt.Errorf("invalid transaction type: %s", value)
	}
	return transactionType, nil
}

func (t TransactionType) isValid() bool {
	switch t {
	case TransactionRestock, TransactionWaste, TransactionAdjustment, TransactionSale:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string {
	return string(t)
}
