// Package notification sends WhatsApp debt reminders to customers.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/notify"
)

// ReminderResult reports the outcome for one customer
type ReminderResult struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	MessageID    string    `json:"message_id,omitempty"`
	Sent         bool      `json:"sent"`
	Error        string    `json:"error,omitempty"`
}

// ReminderService sends outstanding-balance reminders over WhatsApp
type ReminderService struct {
	customerRepo partner.CustomerRepository
	sender       notify.Sender
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(customerRepo partner.CustomerRepository, sender notify.Sender, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		customerRepo: customerRepo,
		sender:       sender,
		logger:       logger,
	}
}

// SendReminder messages one customer about their outstanding balance
func (s *ReminderService) SendReminder(ctx context.Context, customerID uuid.UUID) (*ReminderResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.HasDebt() {
		return nil, shared.NewDomainError("NOTHING_OWED", "Customer has no outstanding debt")
	}

	result := s.remind(ctx, customer)
	return &result, nil
}

// SendAllReminders messages every customer who owes money. Failures on
// individual customers do not stop the run.
func (s *ReminderService) SendAllReminders(ctx context.Context) ([]ReminderResult, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	debtors, err := s.customerRepo.FindDebtors(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]ReminderResult, 0, len(debtors))
	for i := range debtors {
		results = append(results, s.remind(ctx, &debtors[i]))
		// Twilio rate limits bursts on trial accounts
		time.Sleep(100 * time.Millisecond)
	}
	return results, nil
}

func (s *ReminderService) remind(ctx context.Context, customer *partner.Customer) ReminderResult {
	result := ReminderResult{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Phone:        customer.ReminderNumber(),
	}

	if result.Phone == "" {
		result.Error = "customer has no phone number"
		return result
	}

	message := buildReminderMessage(customer)
	messageID, err := s.sender.Send(ctx, result.Phone, message)
	if err != nil {
		s.logger.Warn("debt reminder failed",
			zap.String("customer", customer.Name),
			zap.Error(err))
		result.Error = err.Error()
		return result
	}

	s.logger.Info("debt reminder sent",
		zap.String("customer", customer.Name),
		zap.String("message_id", messageID))
	result.MessageID = messageID
	result.Sent = true
	return result
}

func buildReminderMessage(customer *partner.Customer) string {
	return fmt.Sprintf(
		"Hi %s, Your outstanding debt is Rs %s. Please arrange payment at your earliest convenience. Thank you!",
		customer.Name, customer.TotalDebt.StringFixed(2))
}
