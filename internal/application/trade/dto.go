package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
)

// CheckoutItemRequest is one line of a sale. A line may reference a
// catalog product or stand on its own: free-text lines need an explicit
// name and price and do not move stock.
type CheckoutItemRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	// Price overrides the catalog selling price when haggling happened.
	Price *decimal.Decimal `json:"price"`
}

// CheckoutRequest represents a counter sale
type CheckoutRequest struct {
	CustomerID    *uuid.UUID            `json:"customer_id"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=cash card credit"`
	// DueDate applies to the debt opened when the sale is underpaid.
	DueDate *time.Time `json:"due_date"`
}

// TransactionItemResponse is one line of a recorded transaction
type TransactionItemResponse struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Number        string                    `json:"number"`
	Type          string                    `json:"type"`
	CustomerID    *uuid.UUID                `json:"customer_id,omitempty"`
	Items         []TransactionItemResponse `json:"items"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	PaidAmount    decimal.Decimal           `json:"paid_amount"`
	DebtAmount    decimal.Decimal           `json:"debt_amount"`
	PaymentMethod string                    `json:"payment_method"`
	PaymentStatus string                    `json:"payment_status"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(t *trade.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(t.Items))
	for i, item := range t.Items {
		items[i] = TransactionItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal(),
		}
	}
	return TransactionResponse{
		ID:            t.ID,
		Number:        t.Number,
		Type:          string(t.Type),
		CustomerID:    t.CustomerID,
		Items:         items,
		TotalAmount:   t.TotalAmount,
		PaidAmount:    t.PaidAmount,
		DebtAmount:    t.DebtAmount,
		PaymentMethod: string(t.PaymentMethod),
		PaymentStatus: string(t.PaymentStatus),
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions
func ToTransactionResponses(txns []trade.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// TransactionListResponse is a paginated transaction listing
type TransactionListResponse = shared.Paginated[TransactionResponse]
