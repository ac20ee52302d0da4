package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	documentapp "github.com/pos/backend/internal/application/document"
)

// DocumentHandler serves rendered PDF documents
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers document routes on the given group
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/transactions/:id/receipt", h.Receipt)
	rg.GET("/transactions/customer/:customerId/pdf", h.CustomerHistory)
	rg.GET("/debts/statement/:customerId", h.CustomerStatement)
	rg.GET("/store-history/report", h.StoreReport)
}

// Receipt renders the receipt PDF for a transaction
func (h *DocumentHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	doc, err := h.documentService.Receipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, doc)
}

// CustomerHistory renders the itemized transaction history for a customer
func (h *DocumentHandler) CustomerHistory(c *gin.Context) {
	id, ok := parseID(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	doc, err := h.documentService.CustomerHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, doc)
}

// CustomerStatement renders an outstanding balance statement for a customer
func (h *DocumentHandler) CustomerStatement(c *gin.Context) {
	id, ok := parseID(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	doc, err := h.documentService.CustomerStatement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, doc)
}

// StoreReport renders the stock movement report for a date range.
// Defaults to the last 30 days when no range is given.
func (h *DocumentHandler) StoreReport(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	doc, err := h.documentService.StoreReport(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, doc)
}

func (h *DocumentHandler) servePDF(c *gin.Context, doc *documentapp.DocumentResponse) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
