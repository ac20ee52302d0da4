// Package report computes profit and sales summaries from recorded
// transactions. Item cost prices are snapshotted at sale time, so the
// numbers hold even after catalog prices change.
package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/pos/backend/internal/infrastructure/cache"
)

// Period identifies a reporting window
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

const cacheTTL = 5 * time.Minute

// ProfitReportResponse summarizes a reporting window
type ProfitReportResponse struct {
	From           time.Time                  `json:"from"`
	To             time.Time                  `json:"to"`
	SalesCount     int                        `json:"sales_count"`
	TotalSales     decimal.Decimal            `json:"total_sales"`
	Collected      decimal.Decimal            `json:"collected"`
	CreditGiven    decimal.Decimal            `json:"credit_given"`
	DebtRecovered  decimal.Decimal            `json:"debt_recovered"`
	CostOfGoods    decimal.Decimal            `json:"cost_of_goods"`
	GrossProfit    decimal.Decimal            `json:"gross_profit"`
	PaymentMethods map[string]decimal.Decimal `json:"payment_methods"`
}

// ReportService builds profit reports over the transaction history
type ReportService struct {
	txnRepo trade.TransactionRepository
	cache   cache.ReportCache
	logger  *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(txnRepo trade.TransactionRepository, reportCache cache.ReportCache, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		txnRepo: txnRepo,
		cache:   reportCache,
		logger:  logger,
	}
}

// Profit returns the summary for a named period ending now
func (s *ReportService) Profit(ctx context.Context, period Period) (*ProfitReportResponse, error) {
	from, to, err := resolvePeriod(period, time.Now())
	if err != nil {
		return nil, err
	}
	return s.ProfitRange(ctx, from, to)
}

// ProfitRange returns the summary for an arbitrary window [from, to)
func (s *ReportService) ProfitRange(ctx context.Context, from, to time.Time) (*ProfitReportResponse, error) {
	key := "profit:" + from.Format("20060102") + "-" + to.Format("20060102")

	if payload, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var cached ProfitReportResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		// stale or corrupt entry, recompute
	} else if err != nil {
		s.logger.Warn("report cache read failed", zap.Error(err))
	}

	txns, err := s.txnRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := summarize(txns, from, to)

	if payload, err := json.Marshal(report); err == nil {
		if err := s.cache.Set(ctx, key, payload, cacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}

	return report, nil
}

// InvalidateCache drops cached reports, called after bulk imports
func (s *ReportService) InvalidateCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx, "profit:")
}

func summarize(txns []trade.Transaction, from, to time.Time) *ProfitReportResponse {
	report := &ProfitReportResponse{
		From:           from,
		To:             to,
		TotalSales:     decimal.Zero,
		Collected:      decimal.Zero,
		CreditGiven:    decimal.Zero,
		DebtRecovered:  decimal.Zero,
		CostOfGoods:    decimal.Zero,
		GrossProfit:    decimal.Zero,
		PaymentMethods: make(map[string]decimal.Decimal),
	}

	for i := range txns {
		txn := &txns[i]

		method := string(txn.PaymentMethod)
		report.PaymentMethods[method] = report.PaymentMethods[method].Add(txn.PaidAmount)
		report.Collected = report.Collected.Add(txn.PaidAmount)

		switch txn.Type {
		case trade.TypeSale:
			report.SalesCount++
			report.TotalSales = report.TotalSales.Add(txn.TotalAmount)
			report.CreditGiven = report.CreditGiven.Add(txn.DebtAmount)
			report.CostOfGoods = report.CostOfGoods.Add(txn.CostOfGoods())
		case trade.TypeDebtPayment:
			report.DebtRecovered = report.DebtRecovered.Add(txn.PaidAmount)
		}
	}

	report.GrossProfit = report.TotalSales.Sub(report.CostOfGoods)
	return report
}

// resolvePeriod maps a named period to a concrete window. Days start at
// local midnight; the week starts on Monday.
func resolvePeriod(period Period, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	switch period {
	case PeriodToday:
		return today, tomorrow, nil
	case PeriodWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := today.AddDate(0, 0, -(weekday - 1))
		return monday, tomorrow, nil
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, tomorrow, nil
	default:
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_PERIOD",
			"Period must be one of: today, week, month")
	}
}
