package trade

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeTransaction = "Transaction"

// Event type constant. Transactions are append-only, so recording one
// is the only thing that can happen to it.
const EventTypeTransactionCreated = "TransactionCreated"

// TransactionCreatedEvent is published when a transaction is recorded
type TransactionCreatedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	Number        string          `json:"number"`
	Type          TransactionType `json:"type"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	DebtAmount    decimal.Decimal `json:"debt_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// NewTransactionCreatedEvent creates a new TransactionCreatedEvent
func NewTransactionCreatedEvent(txn *Transaction) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCreated, AggregateTypeTransaction, txn.ID),
		TransactionID:   txn.ID,
		Number:          txn.Number,
		Type:            txn.Type,
		CustomerID:      txn.CustomerID,
		TotalAmount:     txn.TotalAmount,
		PaidAmount:      txn.PaidAmount,
		DebtAmount:      txn.DebtAmount,
		PaymentMethod:   txn.PaymentMethod,
	}
}
