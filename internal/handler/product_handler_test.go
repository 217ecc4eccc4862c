package handler

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSKU(t *testing.T) {
	pattern := regexp.MustCompile(`^SKU-[a-z0-9]{13}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sku := GenerateSKU()
		assert.Regexp(t, pattern, sku)
		seen[sku] = true
	}
	// 100 draws from a 36^13 space should never collide
	assert.Len(t, seen, 100)
}

func TestProductRequestValidate(t *testing.T) {
	valid := ProductRequest{Name: "Office Chair", Price: decimal.RequireFromString("79.99"), Stock: 10}
	field, _ := valid.validate()
	assert.Empty(t, field)

	tests := []struct {
		name  string
		req   ProductRequest
		field string
	}{
		{"short name", ProductRequest{Name: "x", Price: decimal.RequireFromString("1"), Stock: 0}, "name"},
		{"zero price", ProductRequest{Name: "Chair", Price: decimal.Zero, Stock: 0}, "price"},
		{"negative stock", ProductRequest{Name: "Chair", Price: decimal.RequireFromString("1"), Stock: -1}, "stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, msg := tt.req.validate()
			assert.Equal(t, tt.field, field)
			assert.NotEmpty(t, msg)
		})
	}
}
