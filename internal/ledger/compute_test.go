package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceTotal(t *testing.T) {
	items := []ItemInput{
		{ProductID: 1, Quantity: 2, Price: d("10.50")},
		{ProductID: 2, Quantity: 1, Price: d("0.01")},
		{ProductID: 3, Quantity: 3, Price: d("19.99")},
	}

	total := InvoiceTotal(items)
	assert.True(t, total.Equal(d("81.98")), "got %s", total)
}

func TestInvoiceTotalEmpty(t *testing.T) {
	assert.True(t, InvoiceTotal(nil).IsZero())
}

func TestInvoiceTotalExactDecimal(t *testing.T) {
	// 0.1 * 3 must be exactly 0.3, not a float approximation
	items := []ItemInput{{ProductID: 1, Quantity: 3, Price: d("0.10")}}
	assert.True(t, InvoiceTotal(items).Equal(d("0.30")))
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		amountPaid string
		want       string
	}{
		{"fully paid", "100.00", "100.00", StatusPaid},
		{"overpaid", "100.00", "150.00", StatusPaid},
		{"one cent short", "100.00", "99.99", StatusPartiallyPaid},
		{"one cent paid", "100.00", "0.01", StatusPartiallyPaid},
		{"nothing paid", "100.00", "0", StatusUnpaid},
		{"zero total zero paid", "0", "0", StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePaymentStatus(d(tt.total), d(tt.amountPaid))
			assert.Equal(t, tt.want, got)
		})
	}
}
