package partner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
)

// CustomerService handles customer ledger operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	txnRepo      trade.TransactionRepository
	debtRepo     finance.DebtRepository
	txManager    shared.TransactionManager
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	txnRepo trade.TransactionRepository,
	debtRepo finance.DebtRepository,
	txManager shared.TransactionManager,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		debtRepo:     debtRepo,
		txManager:    txManager,
	}
}

// Create creates a new customer. When the customer already owed money
// before being recorded, an opening balance ledger entry and debt are
// opened in the same transaction.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
	}

	customer, err := partner.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if req.WhatsappNumber != "" || req.Address != "" {
		if err := customer.Update(req.Name, req.Phone, req.WhatsappNumber, req.Address); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(valueobject.NewMoneyLKR(*req.CreditLimit)); err != nil {
			return nil, err
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.customerRepo.Save(ctx, customer); err != nil {
			return err
		}
		if req.InitialDebt != nil && req.InitialDebt.IsPositive() {
			return s.openLedgerDebt(ctx, customer,
				trade.NumberPrefixOpeningBalance, "Opening Balance",
				valueobject.NewMoneyLKR(*req.InitialDebt))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// openLedgerDebt records owed money that does not come from a sale.
// Used for opening balances and manual debt additions. Must run inside
// a transaction.
func (s *CustomerService) openLedgerDebt(ctx context.Context, customer *partner.Customer, prefix, description string, amount valueobject.Money) error {
	number, err := s.txnRepo.NextNumber(ctx, prefix, time.Now())
	if err != nil {
		return err
	}

	txn, err := trade.NewLedgerAdjustment(number, customer.ID, description, amount)
	if err != nil {
		return err
	}
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return err
	}

	debt, err := finance.NewDebt(customer.ID, txn.ID, amount)
	if err != nil {
		return err
	}
	if err := s.debtRepo.Save(ctx, debt); err != nil {
		return err
	}

	if err := customer.AccrueDebt(amount); err != nil {
		return err
	}
	return s.customerRepo.SaveWithLock(ctx, customer)
}

// GetByID returns a single customer
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a paginated customer listing
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*CustomerListResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListDebtors returns customers who owe money, largest balance first
func (s *CustomerService) ListDebtors(ctx context.Context, filter shared.Filter) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindDebtors(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// Update updates a customer's details. A positive additional_debt
// records a manual ledger debt alongside the edit.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	phone := customer.Phone
	whatsapp := customer.WhatsappNumber
	address := customer.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.WhatsappNumber != nil {
		whatsapp = *req.WhatsappNumber
	}
	if req.Address != nil {
		address = *req.Address
	}

	if phone != customer.Phone {
		exists, err := s.customerRepo.ExistsByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
	}

	if err := customer.Update(name, phone, whatsapp, address); err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(valueobject.NewMoneyLKR(*req.CreditLimit)); err != nil {
			return nil, err
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.customerRepo.Save(ctx, customer); err != nil {
			return err
		}
		if req.AdditionalDebt != nil && req.AdditionalDebt.IsPositive() {
			return s.openLedgerDebt(ctx, customer,
				trade.NumberPrefixAdditionalDebt, "Additional Debt",
				valueobject.NewMoneyLKR(*req.AdditionalDebt))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Deactivate retires a customer. Rejected while they still owe money.
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer with no outstanding balance
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if customer.HasDebt() {
		return shared.NewDomainError("HAS_OUTSTANDING_DEBT", "Cannot delete a customer with outstanding debt")
	}
	return s.customerRepo.Delete(ctx, id)
}
