package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDebt = "Debt"

// Event type constants
const (
	EventTypeDebtCreated         = "DebtCreated"
	EventTypeDebtPaymentRecorded = "DebtPaymentRecorded"
	EventTypeDebtDueDateChanged  = "DebtDueDateChanged"
	EventTypeDebtReminderSent    = "DebtReminderSent"
)

// DebtCreatedEvent is published when a debt record is opened
type DebtCreatedEvent struct {
	shared.BaseDomainEvent
	DebtID        uuid.UUID       `json:"debt_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewDebtCreatedEvent creates a new DebtCreatedEvent
func NewDebtCreatedEvent(debt *Debt) *DebtCreatedEvent {
	return &DebtCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtCreated, AggregateTypeDebt, debt.ID),
		DebtID:          debt.ID,
		CustomerID:      debt.CustomerID,
		TransactionID:   debt.TransactionID,
		Amount:          debt.Amount,
	}
}

// DebtPaymentRecordedEvent is published when a repayment lands
type DebtPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	DebtID     uuid.UUID       `json:"debt_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// NewDebtPaymentRecordedEvent creates a new DebtPaymentRecordedEvent
func NewDebtPaymentRecordedEvent(debt *Debt, amount decimal.Decimal) *DebtPaymentRecordedEvent {
	return &DebtPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPaymentRecorded, AggregateTypeDebt, debt.ID),
		DebtID:          debt.ID,
		CustomerID:      debt.CustomerID,
		Amount:          amount,
		Remaining:       debt.RemainingAmount,
	}
}

// DebtDueDateChangedEvent is published when the promised date moves
type DebtDueDateChangedEvent struct {
	shared.BaseDomainEvent
	DebtID     uuid.UUID  `json:"debt_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	DueDate    *time.Time `json:"due_date"`
}

// NewDebtDueDateChangedEvent creates a new DebtDueDateChangedEvent
func NewDebtDueDateChangedEvent(debt *Debt) *DebtDueDateChangedEvent {
	return &DebtDueDateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtDueDateChanged, AggregateTypeDebt, debt.ID),
		DebtID:          debt.ID,
		CustomerID:      debt.CustomerID,
		DueDate:         debt.DueDate,
	}
}
