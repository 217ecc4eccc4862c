package ledger

import (
	"fmt"
	"regexp"
	"strconv"
)

const invoiceNumberPrefix = "INV-"

var invoiceNumberPattern = regexp.MustCompile(`^INV-(\d+)$`)

// FormatInvoiceNumber renders a sequence value as a display number,
// zero-padded to six digits (wider values are not truncated).
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", invoiceNumberPrefix, seq)
}

// ParseInvoiceNumber extracts the numeric suffix of a display number.
// Returns false for anything that does not match the INV- format.
func ParseInvoiceNumber(number string) (int64, bool) {
	m := invoiceNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextInvoiceNumber derives the next number for a tenant from its existing
// invoice numbers: max numeric suffix plus one, starting at INV-000001.
// Unparseable numbers are skipped. The caller must run this inside the
// insert transaction and retry on a (tenant_id, number) unique-index
// conflict, since two concurrent creates can observe the same maximum.
func NextInvoiceNumber(existing []string) string {
	var max int64
	for _, number := range existing {
		if n, ok := ParseInvoiceNumber(number); ok && n > max {
			max = n
		}
	}
	return FormatInvoiceNumber(max + 1)
}
