package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/pos/backend/internal/application/finance"
	notificationapp "github.com/pos/backend/internal/application/notification"
)

// ReminderHandler handles debt reminder API endpoints
type ReminderHandler struct {
	BaseHandler
	reminderService *notificationapp.ReminderService
	debtService     *financeapp.DebtService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *notificationapp.ReminderService, debtService *financeapp.DebtService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, debtService: debtService}
}

// RegisterRoutes registers reminder routes on the given group.
// GET only reads; anything that messages a customer is a POST.
func (h *ReminderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reminders := rg.Group("/debts/reminders")
	{
		reminders.GET("", h.List)
		reminders.POST("", h.SendAll)
		reminders.POST("/:customerId", h.Send)
	}
}

// List returns outstanding debts in reminder order: overdue first,
// then due soon, then the rest.
func (h *ReminderHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	debts, err := h.debtService.ListOutstanding(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debts)
}

// SendAll sends a payment reminder to every customer with an outstanding balance
func (h *ReminderHandler) SendAll(c *gin.Context) {
	results, err := h.reminderService.SendAllReminders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Send sends a payment reminder to one customer
func (h *ReminderHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	result, err := h.reminderService.SendReminder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
