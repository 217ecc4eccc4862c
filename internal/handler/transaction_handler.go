package handler

import (
	"net/http"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/database"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionRequest defines the structure for cash transaction requests
type TransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

func (r *TransactionRequest) validate() (string, string) {
	if r.Type != model.TransactionCashIn && r.Type != model.TransactionCashOut {
		return "type", "transaction type must be cash_in or cash_out"
	}
	if !r.Amount.IsPositive() {
		return "amount", "amount must be greater than 0"
	}
	if r.Date.IsZero() {
		return "date", "please select transaction date"
	}
	return "", ""
}

// ListTransactions returns the tenant's cash transactions, newest date first
func ListTransactions(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var transactions []model.Transaction
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Order("date DESC").
		Find(&transactions)
	if result.Error != nil {
		log.Error("Failed to list transactions", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve transactions"})
	}

	return c.JSON(http.StatusOK, transactions)
}

// CreateTransaction records a cash movement
func CreateTransaction(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordTransactionOperation("create")

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid transaction request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if field, msg := req.validate(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "field": field})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	transaction := model.Transaction{
		TenantID:    tenantID,
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}

	if result := database.GetDB().Create(&transaction); result.Error != nil {
		log.Error("Failed to create transaction", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create transaction"})
	}

	log.Info("Transaction recorded",
		zap.Uint("transaction_id", transaction.ID),
		zap.String("type", transaction.Type))
	return c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction edits a cash movement
func UpdateTransaction(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordTransactionOperation("update")

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid transaction request data", zap.String("transaction_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if field, msg := req.validate(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "field": field})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	var transaction model.Transaction
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		First(&transaction, id)
	if result.Error != nil {
		log.Warn("Transaction not found for update", zap.String("transaction_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
	}

	transaction.Type = req.Type
	transaction.Amount = req.Amount
	transaction.Date = req.Date
	transaction.Description = req.Description

	if result := database.GetDB().Save(&transaction); result.Error != nil {
		log.Error("Failed to update transaction", zap.String("transaction_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update transaction"})
	}

	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction soft-deletes a cash movement
func DeleteTransaction(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordTransactionOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Delete(&model.Transaction{}, id)
	if result.Error != nil {
		log.Error("Failed to delete transaction", zap.String("transaction_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete transaction"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
	}

	log.Info("Transaction deleted", zap.String("transaction_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "transaction deleted successfully"})
}
