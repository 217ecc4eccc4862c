package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-000001", FormatInvoiceNumber(1))
	assert.Equal(t, "INV-000042", FormatInvoiceNumber(42))
	assert.Equal(t, "INV-999999", FormatInvoiceNumber(999999))
	// seven digits are not truncated back to six
	assert.Equal(t, "INV-1000000", FormatInvoiceNumber(1000000))
}

func TestParseInvoiceNumber(t *testing.T) {
	n, ok := ParseInvoiceNumber("INV-000007")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	n, ok = ParseInvoiceNumber("INV-1000000")
	assert.True(t, ok)
	assert.Equal(t, int64(1000000), n)

	for _, bad := range []string{"", "INV-", "INV-abc", "inv-000001", "000001", "XINV-000001", "INV-000001X"} {
		_, ok := ParseInvoiceNumber(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	// first invoice of a tenant
	assert.Equal(t, "INV-000001", NextInvoiceNumber(nil))

	// max plus one, not count plus one
	assert.Equal(t, "INV-000006", NextInvoiceNumber([]string{"INV-000002", "INV-000005", "INV-000001"}))

	// unparseable numbers are skipped
	assert.Equal(t, "INV-000004", NextInvoiceNumber([]string{"INV-000003", "legacy-17", ""}))
}
