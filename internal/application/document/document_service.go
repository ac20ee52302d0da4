// Package document generates PDF paperwork: receipts for the counter,
// statements for customers chasing their balance, and stock reports.
package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/pos/backend/internal/infrastructure/printing"
	"github.com/pos/backend/internal/infrastructure/storage"
)

// DocumentResponse carries a rendered PDF
type DocumentResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	ArchiveKey  string `json:"archive_key,omitempty"`
	PageCount   int    `json:"page_count"`
}

// DocumentService renders and archives shop documents
type DocumentService struct {
	txnRepo      trade.TransactionRepository
	customerRepo partner.CustomerRepository
	debtRepo     finance.DebtRepository
	historyRepo  inventory.StoreHistoryRepository
	renderer     printing.PDFRenderer
	engine       *printing.TemplateEngine
	templates    *printing.TemplateStore
	archive      storage.DocumentArchive
	shopName     string
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	txnRepo trade.TransactionRepository,
	customerRepo partner.CustomerRepository,
	debtRepo finance.DebtRepository,
	historyRepo inventory.StoreHistoryRepository,
	renderer printing.PDFRenderer,
	engine *printing.TemplateEngine,
	templates *printing.TemplateStore,
	archive storage.DocumentArchive,
	shopName string,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		debtRepo:     debtRepo,
		historyRepo:  historyRepo,
		renderer:     renderer,
		engine:       engine,
		templates:    templates,
		archive:      archive,
		shopName:     shopName,
		logger:       logger,
	}
}

// Receipt renders the receipt for a transaction
func (s *DocumentService) Receipt(ctx context.Context, transactionID uuid.UUID) (*DocumentResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if txn.CustomerID != nil {
		if customer, err := s.customerRepo.FindByID(ctx, *txn.CustomerID); err == nil {
			customerName = customer.Name
		}
	}

	items := make([]map[string]interface{}, len(txn.Items))
	for i, item := range txn.Items {
		items[i] = map[string]interface{}{
			"ProductName": item.ProductName,
			"Quantity":    item.Quantity,
			"Price":       item.Price,
			"Subtotal":    item.Subtotal(),
		}
	}

	data := map[string]interface{}{
		"ShopName":      s.shopName,
		"Number":        txn.Number,
		"Date":          txn.CreatedAt,
		"CustomerName":  customerName,
		"Items":         items,
		"TotalAmount":   txn.TotalAmount,
		"PaidAmount":    txn.PaidAmount,
		"DebtAmount":    txn.DebtAmount,
		"PaymentMethod": string(txn.PaymentMethod),
		"HasDebt":       txn.HasDebt(),
	}

	key := fmt.Sprintf("receipts/%s/%s.pdf", txn.CreatedAt.Format("2006/01"), txn.Number)
	return s.produce(ctx, printing.DocTypeReceipt, "Receipt "+txn.Number, txn.Number+".pdf", key, data)
}

// CustomerStatement renders a customer's full ledger statement
func (s *DocumentService) CustomerStatement(ctx context.Context, customerID uuid.UUID) (*DocumentResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	filter := statementFilter()
	txns, err := s.txnRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	debts, err := s.debtRepo.FindOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overdueCount := 0
	for i := range debts {
		if debts[i].DueStatus(now) == finance.DueStatusOverdue {
			overdueCount++
		}
	}

	totalBilled := decimal.Zero
	totalPaid := decimal.Zero
	lines := make([]map[string]interface{}, 0, len(txns))
	// newest first from the repo, statements read oldest first
	for i := len(txns) - 1; i >= 0; i-- {
		txn := &txns[i]
		totalBilled = totalBilled.Add(txn.TotalAmount)
		totalPaid = totalPaid.Add(txn.PaidAmount)
		lines = append(lines, map[string]interface{}{
			"Date":        txn.CreatedAt,
			"Number":      txn.Number,
			"Description": describeTransaction(txn),
			"TotalAmount": txn.TotalAmount,
			"PaidAmount":  txn.PaidAmount,
			"DebtAmount":  txn.DebtAmount,
		})
	}

	data := map[string]interface{}{
		"ShopName":        s.shopName,
		"GeneratedAt":     now,
		"CustomerName":    customer.Name,
		"CustomerPhone":   customer.Phone,
		"CustomerAddress": customer.Address,
		"Lines":           lines,
		"TotalBilled":     totalBilled,
		"TotalPaid":       totalPaid,
		"TotalDebt":       customer.TotalDebt,
		"OverdueCount":    overdueCount,
	}

	filename := fmt.Sprintf("statement-%s.pdf", now.Format("20060102"))
	key := fmt.Sprintf("statements/%s/%s", customer.ID, filename)
	return s.produce(ctx, printing.DocTypeStatement, "Statement "+customer.Name, filename, key, data)
}

// CustomerHistory renders a customer's itemized transaction history
func (s *DocumentService) CustomerHistory(ctx context.Context, customerID uuid.UUID) (*DocumentResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.FindByCustomer(ctx, customerID, statementFilter())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	totalBilled := decimal.Zero
	totalPaid := decimal.Zero
	lines := make([]map[string]interface{}, 0, len(txns))
	for i := len(txns) - 1; i >= 0; i-- {
		txn := &txns[i]
		totalBilled = totalBilled.Add(txn.TotalAmount)
		totalPaid = totalPaid.Add(txn.PaidAmount)
		lines = append(lines, map[string]interface{}{
			"Date":          txn.CreatedAt,
			"Number":        txn.Number,
			"Items":         summarizeItems(txn),
			"PaymentMethod": string(txn.PaymentMethod),
			"TotalAmount":   txn.TotalAmount,
			"PaidAmount":    txn.PaidAmount,
			"DebtAmount":    txn.DebtAmount,
		})
	}

	data := map[string]interface{}{
		"ShopName":         s.shopName,
		"GeneratedAt":      now,
		"CustomerName":     customer.Name,
		"CustomerPhone":    customer.Phone,
		"CustomerAddress":  customer.Address,
		"Lines":            lines,
		"TransactionCount": len(txns),
		"TotalBilled":      totalBilled,
		"TotalPaid":        totalPaid,
		"TotalDebt":        customer.TotalDebt,
	}

	filename := fmt.Sprintf("transactions-%s.pdf", now.Format("20060102"))
	key := fmt.Sprintf("history/%s/%s", customer.ID, filename)
	return s.produce(ctx, printing.DocTypeHistory, "Transactions "+customer.Name, filename, key, data)
}

// StoreReport renders the stock movement report for a window
func (s *DocumentService) StoreReport(ctx context.Context, from, to time.Time) (*DocumentResponse, error) {
	records, err := s.historyRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]map[string]interface{}, len(records))
	for i := range records {
		h := &records[i]
		entries[i] = map[string]interface{}{
			"Date":        h.CreatedAt,
			"ProductName": h.ProductName,
			"Movement":    string(h.Movement),
			"Quantity":    h.Quantity,
			"Unit":        string(h.Unit),
			"TotalUnits":  h.TotalUnits,
			"Notes":       h.Notes,
		}
	}

	data := map[string]interface{}{
		"ShopName": s.shopName,
		"From":     from,
		"To":       to,
		"Entries":  entries,
	}

	filename := fmt.Sprintf("store-report-%s-%s.pdf", from.Format("20060102"), to.Format("20060102"))
	return s.produce(ctx, printing.DocTypeStoreReport, "Store Report", filename, "reports/"+filename, data)
}

// produce renders one document end to end and archives it
func (s *DocumentService) produce(ctx context.Context, docType printing.DocType, title, filename, archiveKey string, data interface{}) (*DocumentResponse, error) {
	tmpl, err := s.templates.Lookup(docType)
	if err != nil {
		return nil, err
	}
	content, err := s.templates.Content(docType)
	if err != nil {
		return nil, err
	}

	html, err := s.engine.Render(string(docType), content, data)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:        html,
		PaperSize:   tmpl.PaperSize,
		Orientation: tmpl.Orientation,
		Margins:     tmpl.Margins,
		Title:       title,
	})
	if err != nil {
		return nil, err
	}

	if err := s.archive.Put(ctx, archiveKey, "application/pdf", result.PDFData); err != nil {
		// the caller still gets the PDF, archiving is best effort
		s.logger.Warn("document archive failed",
			zap.String("key", archiveKey),
			zap.Error(err))
		archiveKey = ""
	}

	return &DocumentResponse{
		Filename:    filename,
		ContentType: "application/pdf",
		Data:        result.PDFData,
		ArchiveKey:  archiveKey,
		PageCount:   result.PageCount,
	}, nil
}

func summarizeItems(txn *trade.Transaction) string {
	if txn.Type == trade.TypeDebtPayment {
		return "Debt Payment"
	}
	parts := make([]string, len(txn.Items))
	for i, item := range txn.Items {
		parts[i] = fmt.Sprintf("%s x%s", item.ProductName, item.Quantity.String())
	}
	return strings.Join(parts, ", ")
}

func describeTransaction(txn *trade.Transaction) string {
	switch {
	case txn.Type == trade.TypeDebtPayment:
		return "Debt Payment"
	case len(txn.Items) == 1:
		return txn.Items[0].ProductName
	default:
		return fmt.Sprintf("Sale of %d items", len(txn.Items))
	}
}

// statementFilter covers the whole ledger; small-shop customers do not
// have thousands of transactions.
func statementFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.PageSize = 1000
	return f
}
