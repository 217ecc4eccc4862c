package handler

import (
	"net/http"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/ledger"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the read-only dashboard aggregations.
type AnalyticsHandler struct {
	svc *ledger.Service
}

// NewAnalyticsHandler builds the handler around a ledger service.
func NewAnalyticsHandler(svc *ledger.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Cards returns the dashboard summary block
func (h *AnalyticsHandler) Cards(c echo.Context) error {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	cards, err := h.svc.Cards(c.Request().Context(), tenantID, time.Now())
	if err != nil {
		logger.FromEcho(c).Error("Failed to aggregate analytics cards", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load analytics"})
	}
	return c.JSON(http.StatusOK, cards)
}

// MonthlyPerformance returns 12 calendar-month sales buckets, oldest first
func (h *AnalyticsHandler) MonthlyPerformance(c echo.Context) error {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	buckets, err := h.svc.MonthlyPerformance(c.Request().Context(), tenantID, time.Now())
	if err != nil {
		logger.FromEcho(c).Error("Failed to aggregate monthly performance", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load analytics"})
	}
	return c.JSON(http.StatusOK, buckets)
}

// PaymentStatus returns the paid / partially paid / unpaid invoice counts
func (h *AnalyticsHandler) PaymentStatus(c echo.Context) error {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	counts, err := h.svc.PaymentStatusBreakdown(c.Request().Context(), tenantID)
	if err != nil {
		logger.FromEcho(c).Error("Failed to aggregate payment status", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load analytics"})
	}
	return c.JSON(http.StatusOK, counts)
}

// TopProducts returns the five best-selling products by snapshot revenue
func (h *AnalyticsHandler) TopProducts(c echo.Context) error {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	top, err := h.svc.TopProducts(c.Request().Context(), tenantID)
	if err != nil {
		logger.FromEcho(c).Error("Failed to aggregate top products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load analytics"})
	}
	return c.JSON(http.StatusOK, top)
}
