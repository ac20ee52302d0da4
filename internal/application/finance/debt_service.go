package finance

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

// DebtService handles debt tracking and repayment. Every payment writes
// a companion debt_payment transaction so the day's takings include
// money collected on old debts.
type DebtService struct {
	debtRepo     finance.DebtRepository
	txnRepo      trade.TransactionRepository
	customerRepo partner.CustomerRepository
	txManager    shared.TransactionManager
}

// NewDebtService creates a new DebtService
func NewDebtService(
	debtRepo finance.DebtRepository,
	txnRepo trade.TransactionRepository,
	customerRepo partner.CustomerRepository,
	txManager shared.TransactionManager,
) *DebtService {
	return &DebtService{
		debtRepo:     debtRepo,
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
	}
}

// GetByID returns a single debt with its due status
func (s *DebtService) GetByID(ctx context.Context, id uuid.UUID) (*DebtResponse, error) {
	debt, err := s.debtRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDebtResponse(debt, time.Now())
	return &resp, nil
}

// List returns a paginated debt listing
func (s *DebtService) List(ctx context.Context, filter shared.Filter) (*DebtListResponse, error) {
	debts, err := s.debtRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.debtRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToDebtResponses(debts, time.Now()), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListOutstanding returns unpaid debts sorted by urgency: overdue
// first, then due soon, then the rest.
func (s *DebtService) ListOutstanding(ctx context.Context, filter shared.Filter) ([]DebtResponse, error) {
	debts, err := s.debtRepo.FindOutstanding(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	finance.SortByUrgency(debts, now)
	return ToDebtResponses(debts, now), nil
}

// ListByCustomer returns all of a customer's debts, newest first
func (s *DebtService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]DebtResponse, error) {
	debts, err := s.debtRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return ToDebtResponses(debts, time.Now()), nil
}

// RecordPayment pays down a single debt. The amount is clamped to what
// is owed and the customer balance moves with it; the originating sale
// record stays as written.
func (s *DebtService) RecordPayment(ctx context.Context, debtID uuid.UUID, req RecordPaymentRequest) (*PaymentResultResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	var result *PaymentResultResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		debt, err := s.debtRepo.FindByID(ctx, debtID)
		if err != nil {
			return err
		}

		actual, err := debt.ApplyPayment(valueobject.NewMoneyLKR(req.Amount), req.Note)
		if err != nil {
			return err
		}
		if req.DueDate != nil {
			debt.SetDueDate(req.DueDate)
		}
		if err := s.debtRepo.SaveWithLock(ctx, debt); err != nil {
			return err
		}

		customer, err := s.customerRepo.FindByID(ctx, debt.CustomerID)
		if err != nil {
			return err
		}
		if err := customer.SettleDebt(actual); err != nil {
			return err
		}
		if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
			return err
		}

		companion, err := s.writeCompanion(ctx, customer.ID, actual, paymentMethodOrCash(req.PaymentMethod))
		if err != nil {
			return err
		}

		now := time.Now()
		result = &PaymentResultResponse{
			AppliedAmount:     actual.Amount(),
			TransactionNumber: companion.Number,
			Debts:             []DebtResponse{ToDebtResponse(debt, now)},
			CustomerTotalDebt: customer.TotalDebt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PayCustomer spreads a payment across a customer's unpaid debts in
// allocation order, nearest due date first and undated debts last.
// Whatever exceeds the total owed is not applied.
func (s *DebtService) PayCustomer(ctx context.Context, customerID uuid.UUID, req PayCustomerRequest) (*PaymentResultResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	var result *PaymentResultResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		debts, err := s.debtRepo.FindOutstandingByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			return shared.NewDomainError("NOTHING_OWED", "Customer has no outstanding debts")
		}

		remaining := req.Amount
		applied := valueobject.ZeroLKR()
		touched := make([]finance.Debt, 0, len(debts))

		for i := range debts {
			if !remaining.IsPositive() {
				break
			}
			debt := &debts[i]

			actual, err := debt.ApplyPayment(valueobject.NewMoneyLKR(remaining), req.Note)
			if err != nil {
				return err
			}
			if err := s.debtRepo.SaveWithLock(ctx, debt); err != nil {
				return err
			}

			remaining = remaining.Sub(actual.Amount())
			applied = applied.MustAdd(actual)
			touched = append(touched, *debt)
		}

		if err := customer.SettleDebt(applied); err != nil {
			return err
		}
		if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
			return err
		}

		companion, err := s.writeCompanion(ctx, customer.ID, applied, paymentMethodOrCash(req.PaymentMethod))
		if err != nil {
			return err
		}

		result = &PaymentResultResponse{
			AppliedAmount:     applied.Amount(),
			TransactionNumber: companion.Number,
			Debts:             ToDebtResponses(touched, time.Now()),
			CustomerTotalDebt: customer.TotalDebt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// paymentMethodOrCash falls back to cash when the request left the
// method out. Debt repayments at the counter are almost always cash.
func paymentMethodOrCash(method string) trade.PaymentMethod {
	if method == "" {
		return trade.PaymentMethodCash
	}
	return trade.PaymentMethod(method)
}

// writeCompanion records the collected money as a transaction of its
// own, dated today.
func (s *DebtService) writeCompanion(ctx context.Context, customerID uuid.UUID, amount valueobject.Money, method trade.PaymentMethod) (*trade.Transaction, error) {
	number, err := s.txnRepo.NextNumber(ctx, trade.NumberPrefixSale, time.Now())
	if err != nil {
		return nil, err
	}
	companion, err := trade.NewDebtPayment(number, customerID, amount, method)
	if err != nil {
		return nil, err
	}
	if err := s.txnRepo.Save(ctx, companion); err != nil {
		return nil, err
	}
	return companion, nil
}

// AddDebt records money owed outside of a sale, e.g. borrowed cash or
// an old paper ledger entry. Opens an AD ledger transaction and a debt.
func (s *DebtService) AddDebt(ctx context.Context, customerID uuid.UUID, req AddDebtRequest) (*DebtResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}

	var debt *finance.Debt
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		number, err := s.txnRepo.NextNumber(ctx, trade.NumberPrefixAdditionalDebt, time.Now())
		if err != nil {
			return err
		}

		description := req.Description
		if description == "" {
			description = "Additional Debt"
		}
		amount := valueobject.NewMoneyLKR(req.Amount)

		txn, err := trade.NewLedgerAdjustment(number, customerID, description, amount)
		if err != nil {
			return err
		}
		if err := s.txnRepo.Save(ctx, txn); err != nil {
			return err
		}

		debt, err = finance.NewDebt(customerID, txn.ID, amount)
		if err != nil {
			return err
		}
		if req.DueDate != nil {
			debt.SetDueDate(req.DueDate)
		}
		if err := s.debtRepo.Save(ctx, debt); err != nil {
			return err
		}

		if err := customer.AccrueDebt(amount); err != nil {
			return err
		}
		return s.customerRepo.SaveWithLock(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	resp := ToDebtResponse(debt, time.Now())
	return &resp, nil
}

// UpdateDueDate sets or clears a debt's promised repayment date
func (s *DebtService) UpdateDueDate(ctx context.Context, debtID uuid.UUID, req UpdateDueDateRequest) (*DebtResponse, error) {
	debt, err := s.debtRepo.FindByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	debt.SetDueDate(req.DueDate)
	if err := s.debtRepo.SaveWithLock(ctx, debt); err != nil {
		return nil, err
	}

	resp := ToDebtResponse(debt, time.Now())
	return &resp, nil
}
