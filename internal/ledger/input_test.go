package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() InvoiceInput {
	return InvoiceInput{
		CustomerID: 1,
		Items: []ItemInput{
			{ProductID: 1, Quantity: 2, Price: d("10.00")},
		},
		AmountPaid: decimal.Zero,
	}
}

func TestValidateAccepts(t *testing.T) {
	in := validInput()
	assert.NoError(t, in.Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvoiceInput)
		field  string
	}{
		{"missing customer", func(in *InvoiceInput) { in.CustomerID = 0 }, "customer_id"},
		{"no items", func(in *InvoiceInput) { in.Items = nil }, "items"},
		{"missing product", func(in *InvoiceInput) { in.Items[0].ProductID = 0 }, "items[0].product_id"},
		{"zero quantity", func(in *InvoiceInput) { in.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"negative quantity", func(in *InvoiceInput) { in.Items[0].Quantity = -3 }, "items[0].quantity"},
		{"zero price", func(in *InvoiceInput) { in.Items[0].Price = decimal.Zero }, "items[0].price"},
		{"price below minimum", func(in *InvoiceInput) { in.Items[0].Price = d("0.009") }, "items[0].price"},
		{"negative amount paid", func(in *InvoiceInput) { in.AmountPaid = d("-1") }, "amount_paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateMinimumPriceAccepted(t *testing.T) {
	in := validInput()
	in.Items[0].Price = d("0.01")
	assert.NoError(t, in.Validate())
}
