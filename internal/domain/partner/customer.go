package partner

import (
	"strings"
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a regular who buys on credit. TotalDebt is the
// running outstanding balance across all unpaid sales; it is the ledger
// figure reminders and credit checks read.
type Customer struct {
	shared.BaseAggregateRoot
	Name           string `gorm:"type:varchar(200);not null;index"`
	Phone          string `gorm:"type:varchar(30);not null;index"`
	WhatsappNumber string `gorm:"type:varchar(30)"`
	Address        string `gorm:"type:text"`
	// CreditLimit of zero means no limit is enforced
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDebt   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		CreditLimit:       decimal.Zero,
		TotalDebt:         decimal.Zero,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact details
func (c *Customer) Update(name, phone, whatsappNumber, address string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Name = name
	c.Phone = phone
	c.WhatsappNumber = whatsappNumber
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetCreditLimit sets the maximum debt this customer may carry.
// A zero limit disables the check.
func (c *Customer) SetCreditLimit(limit valueobject.Money) error {
	if limit.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit.Amount()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// CanAccrue reports whether adding amount would stay within the credit limit
func (c *Customer) CanAccrue(amount decimal.Decimal) bool {
	if c.CreditLimit.IsZero() {
		return true
	}
	return c.TotalDebt.Add(amount).LessThanOrEqual(c.CreditLimit)
}

// AccrueDebt increases the outstanding balance by the unpaid portion of a
// sale. The credit limit is enforced here so every caller goes through the
// same check.
func (c *Customer) AccrueDebt(amount valueobject.Money) error {
	if !amount.Amount().IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}
	if !c.CanAccrue(amount.Amount()) {
		return shared.NewDomainError("CREDIT_LIMIT_EXCEEDED",
			"Recording this sale would put the customer over their credit limit")
	}

	oldDebt := c.TotalDebt
	c.TotalDebt = c.TotalDebt.Add(amount.Amount())
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerDebtChangedEvent(c, oldDebt))

	return nil
}

// SettleDebt decreases the outstanding balance by a payment. Overpayments
// clamp the balance at zero rather than going negative.
func (c *Customer) SettleDebt(amount valueobject.Money) error {
	if !amount.Amount().IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	oldDebt := c.TotalDebt
	c.TotalDebt = c.TotalDebt.Sub(amount.Amount())
	if c.TotalDebt.IsNegative() {
		c.TotalDebt = decimal.Zero
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerDebtChangedEvent(c, oldDebt))

	return nil
}

// HasDebt returns true if the customer owes anything
func (c *Customer) HasDebt() bool {
	return c.TotalDebt.IsPositive()
}

// GetTotalDebtMoney returns the outstanding balance as a Money value object
func (c *Customer) GetTotalDebtMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(c.TotalDebt)
}

// ReminderNumber returns the number WhatsApp reminders go to, falling back
// to the primary phone when no separate WhatsApp number is set
func (c *Customer) ReminderNumber() string {
	if c.WhatsappNumber != "" {
		return c.WhatsappNumber
	}
	return c.Phone
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer. A customer with outstanding debt
// cannot be deactivated.
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	if c.HasDebt() {
		return shared.NewDomainError("HAS_OUTSTANDING_DEBT", "Cannot deactivate a customer with outstanding debt")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number is required")
	}
	if len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 30 characters")
	}
	return nil
}
