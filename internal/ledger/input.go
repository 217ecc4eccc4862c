package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemInput is one requested invoice line.
type ItemInput struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// InvoiceInput is the payload for creating or replacing an invoice.
type InvoiceInput struct {
	CustomerID uint            `json:"customer_id"`
	Items      []ItemInput     `json:"items"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// ValidationError reports a caller-correctable input problem with the field
// it concerns. Anything else that goes wrong in the ledger is opaque.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var minItemPrice = decimal.RequireFromString("0.01")

// Validate rejects malformed input before any store mutation.
func (in *InvoiceInput) Validate() error {
	if in.CustomerID == 0 {
		return &ValidationError{Field: "customer_id", Message: "customer is required"}
	}
	if len(in.Items) == 0 {
		return &ValidationError{Field: "items", Message: "please add at least one product"}
	}
	for i, item := range in.Items {
		if item.ProductID == 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "product is required"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be at least 1"}
		}
		if item.Price.LessThan(minItemPrice) {
			return &ValidationError{Field: fmt.Sprintf("items[%d].price", i), Message: "price must be at least 0.01"}
		}
	}
	if in.AmountPaid.IsNegative() {
		return &ValidationError{Field: "amount_paid", Message: "amount paid cannot be negative"}
	}
	return nil
}
