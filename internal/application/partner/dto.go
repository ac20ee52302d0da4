package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Phone          string           `json:"phone" binding:"required,min=3,max=30"`
	WhatsappNumber string           `json:"whatsapp_number" binding:"max=30"`
	Address        string           `json:"address" binding:"max=500"`
	CreditLimit    *decimal.Decimal `json:"credit_limit"`
	// InitialDebt records a balance the customer already owed before the
	// shop started tracking them here. It opens an OB ledger entry.
	InitialDebt *decimal.Decimal `json:"initial_debt"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone          *string          `json:"phone" binding:"omitempty,min=3,max=30"`
	WhatsappNumber *string          `json:"whatsapp_number" binding:"omitempty,max=30"`
	Address        *string          `json:"address" binding:"omitempty,max=500"`
	CreditLimit    *decimal.Decimal `json:"credit_limit"`
	AdditionalDebt *decimal.Decimal `json:"additional_debt"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	WhatsappNumber string          `json:"whatsapp_number"`
	Address        string          `json:"address"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	Status         string          `json:"status"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		WhatsappNumber: c.WhatsappNumber,
		Address:        c.Address,
		CreditLimit:    c.CreditLimit,
		TotalDebt:      c.TotalDebt,
		Status:         string(c.Status),
		Version:        c.Version,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// CustomerListResponse is a paginated customer listing
type CustomerListResponse = shared.Paginated[CustomerResponse]
