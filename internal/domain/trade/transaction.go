package trade

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionType classifies what a transaction records
type TransactionType string

const (
	// TypeSale is a counter sale of one or more items
	TypeSale TransactionType = "sale"
	// TypeDebtPayment is the companion record written when an old debt is
	// paid down, so the day's takings include the cash received
	TypeDebtPayment TransactionType = "debt_payment"
)

// Number prefixes for ledger entries that are not counter sales
const (
	NumberPrefixSale           = "TXN"
	NumberPrefixOpeningBalance = "OB"
	NumberPrefixAdditionalDebt = "AD"
)

// PaymentMethod is how the customer paid at the counter
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCredit PaymentMethod = "credit"
)

// PaymentStatus is derived from the paid amount, never set directly
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPending PaymentStatus = "pending"
)

// TransactionItem is a single line on the receipt. ProductName, Price and
// CostPrice are snapshots taken at sale time; later catalog edits must not
// rewrite history.
type TransactionItem struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// Subtotal returns quantity times price for this line
func (i TransactionItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

// TransactionItems is a slice of TransactionItem that implements GORM
// Scanner/Valuer for JSONB storage
type TransactionItems []TransactionItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (t TransactionItems) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (t *TransactionItems) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TransactionItems: unsupported type")
	}

	if len(bytes) == 0 {
		*t = TransactionItems{}
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// Transaction is the aggregate root for everything that flows through the
// till: counter sales, debt payments and ledger adjustments.
type Transaction struct {
	shared.BaseAggregateRoot
	Number        string           `gorm:"type:varchar(30);not null;uniqueIndex"`
	Type          TransactionType  `gorm:"type:varchar(20);not null;default:'sale'"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index"`
	Items         TransactionItems `gorm:"type:jsonb;not null"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DebtAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentMethod PaymentMethod    `gorm:"type:varchar(10);not null"`
	PaymentStatus PaymentStatus    `gorm:"type:varchar(10);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewSale records a counter sale. The total is computed from the items and
// the unpaid portion becomes the debt amount, clamped at zero when the
// customer overpays.
func NewSale(number string, customerID *uuid.UUID, items []TransactionItem, paidAmount valueobject.Money, method PaymentMethod) (*Transaction, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "A sale needs at least one item")
	}
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	if paidAmount.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}

	total := decimal.Zero
	for _, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item name is required")
		}
		if !item.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item price cannot be negative")
		}
		total = total.Add(item.Subtotal())
	}

	txn := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Type:              TypeSale,
		CustomerID:        customerID,
		Items:             items,
		TotalAmount:       total,
		PaidAmount:        paidAmount.Amount(),
		PaymentMethod:     method,
	}
	txn.refreshDebt()

	txn.AddDomainEvent(NewTransactionCreatedEvent(txn))

	return txn, nil
}

// NewDebtPayment writes the companion record for a payment against old
// debt, so daily takings include the money received. It carries a single
// descriptive line and is always fully paid.
func NewDebtPayment(number string, customerID uuid.UUID, amount valueobject.Money, method PaymentMethod) (*Transaction, error) {
	if !amount.Amount().IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if err := validateMethod(method); err != nil {
		return nil, err
	}

	txn := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Type:              TypeDebtPayment,
		CustomerID:        &customerID,
		Items: TransactionItems{{
			ProductName: "Debt Payment",
			Quantity:    decimal.NewFromInt(1),
			Price:       amount.Amount(),
		}},
		TotalAmount:   amount.Amount(),
		PaidAmount:    amount.Amount(),
		DebtAmount:    decimal.Zero,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusPaid,
	}

	txn.AddDomainEvent(NewTransactionCreatedEvent(txn))

	return txn, nil
}

// NewLedgerAdjustment records debt that did not come from a counter sale:
// an opening balance carried over from the paper book, or debt added by
// hand. Nothing is paid and the whole amount is owed.
func NewLedgerAdjustment(number string, customerID uuid.UUID, description string, amount valueobject.Money) (*Transaction, error) {
	if !amount.Amount().IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Adjustment amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Adjustment description is required")
	}

	txn := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Type:              TypeSale,
		CustomerID:        &customerID,
		Items: TransactionItems{{
			ProductName: description,
			Quantity:    decimal.NewFromInt(1),
			Price:       amount.Amount(),
		}},
		TotalAmount:   amount.Amount(),
		PaidAmount:    decimal.Zero,
		DebtAmount:    amount.Amount(),
		PaymentMethod: PaymentMethodCredit,
		PaymentStatus: PaymentStatusPending,
	}

	txn.AddDomainEvent(NewTransactionCreatedEvent(txn))

	return txn, nil
}

// refreshDebt recomputes DebtAmount and PaymentStatus from the totals.
// Only called during construction; a recorded transaction never changes.
func (t *Transaction) refreshDebt() {
	t.DebtAmount = t.TotalAmount.Sub(t.PaidAmount)
	if t.DebtAmount.IsNegative() {
		t.DebtAmount = decimal.Zero
	}

	switch {
	case t.PaidAmount.GreaterThanOrEqual(t.TotalAmount):
		t.PaymentStatus = PaymentStatusPaid
	case t.PaidAmount.IsPositive():
		t.PaymentStatus = PaymentStatusPartial
	default:
		t.PaymentStatus = PaymentStatusPending
	}
}

// IsSettled returns true when nothing is owed on this transaction
func (t *Transaction) IsSettled() bool {
	return !t.DebtAmount.IsPositive()
}

// HasDebt returns true when something is still owed
func (t *Transaction) HasDebt() bool {
	return t.DebtAmount.IsPositive()
}

// GetTotalMoney returns the total as a Money value object
func (t *Transaction) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(t.TotalAmount)
}

// GetDebtMoney returns the outstanding debt as a Money value object
func (t *Transaction) GetDebtMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(t.DebtAmount)
}

// CostOfGoods returns the summed cost snapshot across all lines
func (t *Transaction) CostOfGoods() decimal.Decimal {
	cogs := decimal.Zero
	for _, item := range t.Items {
		cogs = cogs.Add(item.Quantity.Mul(item.CostPrice))
	}
	return cogs
}

func validateMethod(method PaymentMethod) error {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodCredit:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash, card or credit")
	}
}
