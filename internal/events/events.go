package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventInvoiceCreated = "invoice.created"
	EventInvoiceUpdated = "invoice.updated"
	EventInvoiceDeleted = "invoice.deleted"
)

// Envelope wraps every event published to the invoice stream.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	TenantID     uint            `json:"tenant_id"`
	Payload      json.RawMessage `json:"payload"`
}

// InvoicePayload carries the invoice fields consumers care about.
type InvoicePayload struct {
	InvoiceID  uint            `json:"invoice_id"`
	Number     string          `json:"number"`
	CustomerID uint            `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// MustMarshal panics on marshal failure. Only used for types this package
// controls, which always marshal.
func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
