package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
)

// RecordPaymentRequest represents a payment toward a single debt.
// The method defaults to cash; DueDate overwrites the debt's due date
// when supplied.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card credit"`
	DueDate       *time.Time      `json:"due_date"`
	Note          string          `json:"note"`
}

// PayCustomerRequest pays down a customer's debts in allocation order
type PayCustomerRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card credit"`
	Note          string          `json:"note"`
}

// AddDebtRequest records owed money outside of a sale
type AddDebtRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"due_date"`
}

// UpdateDueDateRequest changes or clears a debt's due date
type UpdateDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// PaymentEntryResponse is one installment in a debt's history
type PaymentEntryResponse struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID              uuid.UUID              `json:"id"`
	CustomerID      uuid.UUID              `json:"customer_id"`
	TransactionID   uuid.UUID              `json:"transaction_id"`
	Amount          decimal.Decimal        `json:"amount"`
	PaidAmount      decimal.Decimal        `json:"paid_amount"`
	RemainingAmount decimal.Decimal        `json:"remaining_amount"`
	PaymentHistory  []PaymentEntryResponse `json:"payment_history"`
	DueDate         *time.Time             `json:"due_date,omitempty"`
	DueStatus       string                 `json:"due_status"`
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// PaymentResultResponse reports what a payment actually did. When the
// tendered amount exceeds what was owed, only the owed part is applied.
type PaymentResultResponse struct {
	AppliedAmount     decimal.Decimal `json:"applied_amount"`
	TransactionNumber string          `json:"transaction_number"`
	Debts             []DebtResponse  `json:"debts"`
	CustomerTotalDebt decimal.Decimal `json:"customer_total_debt"`
}

// ToDebtResponse converts a domain debt to a response DTO
func ToDebtResponse(d *finance.Debt, now time.Time) DebtResponse {
	history := make([]PaymentEntryResponse, len(d.PaymentHistory))
	for i, entry := range d.PaymentHistory {
		history[i] = PaymentEntryResponse{
			ID:     entry.ID,
			Amount: entry.Amount,
			Date:   entry.Date,
			Note:   entry.Note,
		}
	}
	return DebtResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		TransactionID:   d.TransactionID,
		Amount:          d.Amount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		PaymentHistory:  history,
		DueDate:         d.DueDate,
		DueStatus:       string(d.DueStatus(now)),
		Version:         d.Version,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDebtResponses converts a slice of domain debts
func ToDebtResponses(debts []finance.Debt, now time.Time) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i := range debts {
		responses[i] = ToDebtResponse(&debts[i], now)
	}
	return responses
}

// DebtListResponse is a paginated debt listing
type DebtListResponse = shared.Paginated[DebtResponse]
