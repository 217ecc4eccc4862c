package ledger

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus values derived from invoice totals.
const (
	StatusPaid          = "paid"
	StatusPartiallyPaid = "partially_paid"
	StatusUnpaid        = "unpaid"
)

// InvoiceTotal computes the invoice total as the sum of price * quantity
// over the given lines, in exact decimal arithmetic.
func InvoiceTotal(items []ItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DerivePaymentStatus classifies an invoice by exact decimal comparison.
// An invoice with a zero total and nothing paid counts as paid, and an
// overpaid invoice is still just paid.
func DerivePaymentStatus(total, amountPaid decimal.Decimal) string {
	switch {
	case amountPaid.GreaterThanOrEqual(total):
		return StatusPaid
	case amountPaid.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}
