package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	financeapp "github.com/pos/backend/internal/application/finance"
	notificationapp "github.com/pos/backend/internal/application/notification"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// countingSender records sends without talking to WhatsApp
type countingSender struct {
	sent int
}

func (s *countingSender) Send(ctx context.Context, phone, message string) (string, error) {
	s.sent++
	return "SM-test", nil
}

type reminderRouterFixture struct {
	debtRepo     *MockDebtRepository
	customerRepo *MockCustomerRepository
	sender       *countingSender
	router       *gin.Engine
}

func setupReminderRouter() reminderRouterFixture {
	f := reminderRouterFixture{
		debtRepo:     new(MockDebtRepository),
		customerRepo: new(MockCustomerRepository),
		sender:       &countingSender{},
		router:       setupTestRouter(),
	}
	debtSvc := financeapp.NewDebtService(f.debtRepo, new(MockTransactionRepository), f.customerRepo, passthroughTxManager{})
	reminderSvc := notificationapp.NewReminderService(f.customerRepo, f.sender, nil)
	NewReminderHandler(reminderSvc, debtSvc).RegisterRoutes(f.router.Group("/api/v1"))
	return f
}

// Listing reminders must not message anyone.
func TestReminderListIsReadOnly(t *testing.T) {
	f := setupReminderRouter()

	f.debtRepo.On("FindOutstanding", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]finance.Debt{*openDebt(t, 900)}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debts/reminders", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "due_status")
	assert.Equal(t, 0, f.sender.sent)
	f.customerRepo.AssertNotCalled(t, "FindDebtors", mock.Anything, mock.Anything)
}

func TestReminderBroadcastSends(t *testing.T) {
	f := setupReminderRouter()

	customer, err := partner.NewCustomer("Sunil Fernando", "0765551234")
	require.NoError(t, err)
	require.NoError(t, customer.AccrueDebt(valueobject.NewMoneyLKRFromFloat(1200)))

	f.customerRepo.On("FindDebtors", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]partner.Customer{*customer}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/debts/reminders", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.sender.sent)
}
