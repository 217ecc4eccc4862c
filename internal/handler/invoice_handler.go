package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/ledger"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// InvoiceHandler exposes the invoice ledger over HTTP.
type InvoiceHandler struct {
	svc *ledger.Service
}

// NewInvoiceHandler builds the handler around a ledger service.
func NewInvoiceHandler(svc *ledger.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// ledgerError maps ledger failures to the fixed response set: field-level
// detail for validation, a generic message for not-found (so cross-tenant
// probing learns nothing), opaque 500 for everything else.
func ledgerError(c echo.Context, err error) error {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, ledger.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	case errors.Is(err, ledger.ErrInvoiceNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	default:
		logger.FromEcho(c).Error("Ledger operation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// List returns the tenant's invoices with customer and line details
func (h *InvoiceHandler) List(c echo.Context) error {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	views, err := h.svc.ListInvoices(c.Request().Context(), tenantID)
	if err != nil {
		logger.FromEcho(c).Error("Failed to list invoices", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve invoices"})
	}
	return c.JSON(http.StatusOK, views)
}

// Create creates an invoice and decrements product stock
func (h *InvoiceHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordInvoiceOperation("create")

	var in ledger.InvoiceInput
	if err := c.Bind(&in); err != nil {
		log.Warn("Invalid invoice request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	invoice, err := h.svc.CreateInvoice(c.Request().Context(), tenantID, in)
	if err != nil {
		return ledgerError(c, err)
	}

	log.Info("Invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.String("number", invoice.Number))
	return c.JSON(http.StatusCreated, invoice)
}

// Update replaces an invoice's items, restoring and reapplying stock
func (h *InvoiceHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordInvoiceOperation("update")

	invoiceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	var in ledger.InvoiceInput
	if err := c.Bind(&in); err != nil {
		log.Warn("Invalid invoice request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	invoice, err := h.svc.UpdateInvoice(c.Request().Context(), tenantID, uint(invoiceID), in)
	if err != nil {
		return ledgerError(c, err)
	}

	log.Info("Invoice updated",
		zap.Uint("invoice_id", invoice.ID),
		zap.String("number", invoice.Number))
	return c.JSON(http.StatusOK, invoice)
}

// Delete soft-deletes an invoice (stock stays applied)
func (h *InvoiceHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordInvoiceOperation("delete")

	invoiceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.svc.DeleteInvoice(c.Request().Context(), tenantID, uint(invoiceID)); err != nil {
		return ledgerError(c, err)
	}

	log.Info("Invoice deleted", zap.Uint64("invoice_id", invoiceID))
	return c.JSON(http.StatusOK, echo.Map{"message": "invoice deleted successfully"})
}

// Export streams the tenant's invoices as an xlsx workbook
func (h *InvoiceHandler) Export(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordInvoiceOperation("export")

	views, err := h.svc.ListInvoices(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to load invoices for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export invoices"})
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Number", "Customer", "Items", "Total", "Amount Paid", "Payment Status", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, view := range views {
		itemCount := 0
		for _, line := range view.Products {
			itemCount += line.Quantity
		}
		values := []interface{}{
			view.Number,
			view.Customer.Name,
			itemCount,
			view.Total.String(),
			view.AmountPaid.String(),
			view.PaymentStatus,
			view.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	if _, err := f.WriteTo(c.Response()); err != nil {
		log.Error("Failed to write invoice export", zap.Error(err))
		return err
	}
	return nil
}
