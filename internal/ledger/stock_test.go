package ledger

import (
	"testing"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAdjustmentsForItemsMergesDuplicates(t *testing.T) {
	items := []ItemInput{
		{ProductID: 7, Quantity: 2, Price: decimal.New(1, 0)},
		{ProductID: 3, Quantity: 1, Price: decimal.New(1, 0)},
		{ProductID: 7, Quantity: 4, Price: decimal.New(1, 0)},
	}

	got := AdjustmentsForItems(items, -1)
	assert.Equal(t, []StockAdjustment{
		{ProductID: 3, Delta: -1},
		{ProductID: 7, Delta: -6},
	}, got)
}

func TestAdjustmentsForItemsPositiveSign(t *testing.T) {
	items := []ItemInput{{ProductID: 1, Quantity: 5, Price: decimal.New(1, 0)}}
	got := AdjustmentsForItems(items, 1)
	assert.Equal(t, []StockAdjustment{{ProductID: 1, Delta: 5}}, got)
}

func TestUpdateNetDelta(t *testing.T) {
	// Replacing 5 units with 3 units of the same product must net to +2:
	// restore the old lines, then consume the new ones.
	old := []model.InvoiceItem{{ProductID: 9, Quantity: 5}}
	newItems := []ItemInput{{ProductID: 9, Quantity: 3, Price: decimal.New(1, 0)}}

	byProduct := map[uint]int{}
	for _, adj := range AdjustmentsForStoredItems(old, 1) {
		byProduct[adj.ProductID] += adj.Delta
	}
	for _, adj := range AdjustmentsForItems(newItems, -1) {
		byProduct[adj.ProductID] += adj.Delta
	}
	assert.Equal(t, 2, byProduct[9])
}

func TestBulkStockUpdate(t *testing.T) {
	adjustments := []StockAdjustment{
		{ProductID: 3, Delta: -1},
		{ProductID: 7, Delta: 2},
	}

	sql, args := BulkStockUpdate(42, adjustments)
	assert.Equal(t,
		"UPDATE products SET stock = stock + CASE id WHEN ? THEN ? WHEN ? THEN ? ELSE 0 END, updated_at = CURRENT_TIMESTAMP WHERE tenant_id = ? AND id IN (?,?)",
		sql)
	assert.Equal(t, []interface{}{uint(3), -1, uint(7), 2, uint(42), uint(3), uint(7)}, args)
}

func TestBulkStockUpdateEmpty(t *testing.T) {
	sql, args := BulkStockUpdate(42, nil)
	assert.Empty(t, sql)
	assert.Nil(t, args)
}
