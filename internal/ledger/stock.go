package ledger

import (
	"sort"
	"strings"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
)

// StockAdjustment is a signed stock delta for one product: positive adds
// stock back, negative consumes it.
type StockAdjustment struct {
	ProductID uint
	Delta     int
}

// AdjustmentsForItems merges the requested lines into one signed delta per
// product (a product may appear on several lines) and applies the sign to
// every quantity. Results are ordered by product ID so the generated SQL is
// deterministic.
func AdjustmentsForItems(items []ItemInput, sign int) []StockAdjustment {
	byProduct := make(map[uint]int, len(items))
	for _, item := range items {
		byProduct[item.ProductID] += sign * item.Quantity
	}
	return sortAdjustments(byProduct)
}

// AdjustmentsForStoredItems is AdjustmentsForItems over rows already in the
// store, used to restore stock before an invoice's items are replaced.
func AdjustmentsForStoredItems(items []model.InvoiceItem, sign int) []StockAdjustment {
	byProduct := make(map[uint]int, len(items))
	for _, item := range items {
		byProduct[item.ProductID] += sign * item.Quantity
	}
	return sortAdjustments(byProduct)
}

func sortAdjustments(byProduct map[uint]int) []StockAdjustment {
	out := make([]StockAdjustment, 0, len(byProduct))
	for id, delta := range byProduct {
		if delta == 0 {
			continue
		}
		out = append(out, StockAdjustment{ProductID: id, Delta: delta})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// BulkStockUpdate builds a single CASE WHEN update applying every
// adjustment in one statement, keyed by product ID and scoped to the
// tenant. One statement instead of N read-modify-writes keeps the
// adjustment atomic and bounds round-trips.
func BulkStockUpdate(tenantID uint, adjustments []StockAdjustment) (string, []interface{}) {
	if len(adjustments) == 0 {
		return "", nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, 2*len(adjustments)+1+len(adjustments))

	sb.WriteString("UPDATE products SET stock = stock + CASE id")
	for _, adj := range adjustments {
		sb.WriteString(" WHEN ? THEN ?")
		args = append(args, adj.ProductID, adj.Delta)
	}
	sb.WriteString(" ELSE 0 END, updated_at = CURRENT_TIMESTAMP WHERE tenant_id = ? AND id IN (")
	args = append(args, tenantID)
	for i, adj := range adjustments {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("?")
		args = append(args, adj.ProductID)
	}
	sb.WriteString(")")

	return sb.String(), args
}
