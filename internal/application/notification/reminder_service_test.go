package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindDebtors(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, phone, message string) (string, error) {
	args := m.Called(ctx, phone, message)
	return args.String(0), args.Error(1)
}

func newDebtor(t *testing.T, name, phone string, debt float64) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(name, phone)
	require.NoError(t, err)
	if debt > 0 {
		require.NoError(t, customer.AccrueDebt(valueobject.NewMoneyLKRFromFloat(debt)))
	}
	return customer
}

func TestSendReminder(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	sender := new(MockSender)
	svc := NewReminderService(customerRepo, sender, nil)

	customer := newDebtor(t, "Nimal", "0771234567", 1250.5)

	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	sender.On("Send", mock.Anything, "0771234567",
		"Hi Nimal, Your outstanding debt is Rs 1250.50. Please arrange payment at your earliest convenience. Thank you!").
		Return("SM123", nil)

	result, err := svc.SendReminder(context.Background(), customer.ID)

	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Equal(t, "SM123", result.MessageID)
	sender.AssertExpectations(t)
}

func TestSendReminderPrefersWhatsappNumber(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	sender := new(MockSender)
	svc := NewReminderService(customerRepo, sender, nil)

	customer := newDebtor(t, "Nimal", "0771234567", 500)
	require.NoError(t, customer.Update("Nimal", "0771234567", "0719998888", ""))

	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	sender.On("Send", mock.Anything, "0719998888", mock.AnythingOfType("string")).
		Return("SM124", nil)

	result, err := svc.SendReminder(context.Background(), customer.ID)

	require.NoError(t, err)
	assert.Equal(t, "0719998888", result.Phone)
}

func TestSendReminderNothingOwed(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	sender := new(MockSender)
	svc := NewReminderService(customerRepo, sender, nil)

	customer := newDebtor(t, "Nimal", "0771234567", 0)
	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	_, err := svc.SendReminder(context.Background(), customer.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOTHING_OWED", domainErr.Code)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendAllRemindersContinuesPastFailures(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	sender := new(MockSender)
	svc := NewReminderService(customerRepo, sender, nil)

	good := newDebtor(t, "Nimal", "0771234567", 300)
	bad := newDebtor(t, "Sunil", "0772223333", 700)

	customerRepo.On("FindDebtors", mock.Anything, mock.Anything).
		Return([]partner.Customer{*bad, *good}, nil)
	sender.On("Send", mock.Anything, "0772223333", mock.AnythingOfType("string")).
		Return("", errors.New("unreachable"))
	sender.On("Send", mock.Anything, "0771234567", mock.AnythingOfType("string")).
		Return("SM125", nil)

	results, err := svc.SendAllReminders(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Sent)
	assert.Equal(t, "unreachable", results[0].Error)
	assert.True(t, results[1].Sent)
}
