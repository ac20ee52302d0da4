package finance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentEntry is one repayment against a debt, kept in the debt's own
// history so a statement can be rebuilt without joining the till records
type PaymentEntry struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note,omitempty"`
}

// PaymentHistory is a slice of PaymentEntry that implements GORM
// Scanner/Valuer for JSONB storage
type PaymentHistory []PaymentEntry

// Value implements driver.Valuer interface for GORM to store as JSONB
func (p PaymentHistory) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (p *PaymentHistory) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentHistory{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentHistory: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentHistory{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Debt tracks the unpaid portion of a single transaction. One transaction
// produces at most one debt record; the customer's TotalDebt is the sum of
// all their remaining amounts.
type Debt struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentHistory  PaymentHistory  `gorm:"type:jsonb;not null"`
	DueDate         *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (Debt) TableName() string {
	return "debts"
}

// NewDebt opens a debt record for the unpaid portion of a transaction
func NewDebt(customerID, transactionID uuid.UUID, amount valueobject.Money) (*Debt, error) {
	if !amount.Amount().IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}

	debt := &Debt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		TransactionID:     transactionID,
		Amount:            amount.Amount(),
		PaidAmount:        decimal.Zero,
		RemainingAmount:   amount.Amount(),
		PaymentHistory:    PaymentHistory{},
	}

	debt.AddDomainEvent(NewDebtCreatedEvent(debt))

	return debt, nil
}

// ApplyPayment records a repayment and returns the amount actually applied.
// A payment larger than the remaining amount is clamped; the surplus is the
// cashier's problem to hand back, not the ledger's.
func (d *Debt) ApplyPayment(amount valueobject.Money, note string) (valueobject.Money, error) {
	if !amount.Amount().IsPositive() {
		return valueobject.ZeroLKR(), shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if d.IsSettled() {
		return valueobject.ZeroLKR(), shared.NewDomainError("ALREADY_SETTLED", "Debt is already fully paid")
	}

	actual := amount.Amount()
	if actual.GreaterThan(d.RemainingAmount) {
		actual = d.RemainingAmount
	}

	d.PaidAmount = d.PaidAmount.Add(actual)
	d.RemainingAmount = d.RemainingAmount.Sub(actual)
	d.PaymentHistory = append(d.PaymentHistory, PaymentEntry{
		ID:     uuid.New(),
		Amount: actual,
		Date:   time.Now(),
		Note:   note,
	})
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtPaymentRecordedEvent(d, actual))

	return valueobject.NewMoneyLKR(actual), nil
}

// SetDueDate sets or clears the promised repayment date
func (d *Debt) SetDueDate(dueDate *time.Time) {
	d.DueDate = dueDate
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtDueDateChangedEvent(d))
}

// IsSettled returns true when nothing remains to pay
func (d *Debt) IsSettled() bool {
	return !d.RemainingAmount.IsPositive()
}

// GetRemainingMoney returns the remaining amount as a Money value object
func (d *Debt) GetRemainingMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(d.RemainingAmount)
}

// DueStatus classifies the debt against the clock, see ClassifyDue
func (d *Debt) DueStatus(now time.Time) DueStatus {
	return ClassifyDue(d.DueDate, d.RemainingAmount, now)
}
