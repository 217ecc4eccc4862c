package handler

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/database"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests.
// Stock set here is the opening stock; afterwards only the invoice ledger
// moves it.
type ProductRequest struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Images []string        `json:"images"`
}

var minProductPrice = decimal.RequireFromString("0.01")

func (r *ProductRequest) validate() (string, string) {
	if len(r.Name) < 2 {
		return "name", "product name must be at least 2 characters"
	}
	if r.Price.LessThan(minProductPrice) {
		return "price", "price must be at least 0.01"
	}
	if r.Stock < 0 {
		return "stock", "stock cannot be negative"
	}
	return "", ""
}

const skuAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSKU produces a random product SKU of the form SKU-<13 base36 chars>.
func GenerateSKU() string {
	b := make([]byte, 13)
	for i := range b {
		b[i] = skuAlphabet[rand.Intn(len(skuAlphabet))]
	}
	return "SKU-" + string(b)
}

// ListProducts returns the tenant's non-deleted products
func ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var products []model.Product
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Order("id DESC").
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, products)
}

// CreateProduct creates a product with a server-generated SKU
func CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordProductOperation("create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid product request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if field, msg := req.validate(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "field": field})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	product := model.Product{
		TenantID: tenantID,
		Name:     req.Name,
		SKU:      GenerateSKU(),
		Price:    req.Price,
		Stock:    req.Stock,
		Images:   pq.StringArray(req.Images),
	}

	if result := database.GetDB().Create(&product); result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates a product's name, price, and images. The SKU is
// immutable and stock changes flow through invoices.
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordProductOperation("update")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid product request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if field, msg := req.validate(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "field": field})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	var product model.Product
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Images = pq.StringArray(req.Images)

	if result := database.GetDB().Save(&product); result.Error != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes a product. Existing invoice items keep their
// snapshots and still resolve the product name for historical display.
func DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordProductOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
