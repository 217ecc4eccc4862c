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
	"go.uber.org/zap"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (r *CustomerRequest) validate() (string, string) {
	if r.Name == "" {
		return "name", "name is required"
	}
	if len(r.Phone) > 15 {
		return "phone", "phone must be less than 15 characters"
	}
	return "", ""
}

// ListCustomers returns the tenant's non-deleted customers
func ListCustomers(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var customers []model.Customer
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Order("id DESC").
		Find(&customers)
	if result.Error != nil {
		log.Error("Failed to list customers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	return c.JSON(http.StatusOK, customers)
}

// CreateCustomer creates a customer record
func CreateCustomer(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordCustomerOperation("create")

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid customer request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if field, msg := req.validate(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "field": field})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	customer := model.Customer{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if result := database.GetDB().Create(&customer); result.Error != nil {
		log.Error("Failed to create customer", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	}

	log.Info("Customer created", zap.Uint("customer_id", customer.ID))
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer updates a customer record
func UpdateCustomer(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordCustomerOperation("update")

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid customer request data", zap.String("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if field, msg := req.validate(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "field": field})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	var customer model.Customer
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		First(&customer, id)
	if result.Error != nil {
		log.Warn("Customer not found for update", zap.String("customer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if result := database.GetDB().Save(&customer); result.Error != nil {
		log.Error("Failed to update customer", zap.String("customer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update customer"})
	}

	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft-deletes a customer. Invoices referencing the
// customer are untouched.
func DeleteCustomer(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordCustomerOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Delete(&model.Customer{}, id)
	if result.Error != nil {
		log.Error("Failed to delete customer", zap.String("customer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	log.Info("Customer deleted", zap.String("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted successfully"})
}
