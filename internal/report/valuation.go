package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ItemCode extracts the item code from a product string: the part before
// the first "-", trimmed. "500123 - Frasco 500ml" -> "500123".
func ItemCode(product string) string {
	code, _, _ := strings.Cut(product, "-")
	return strings.TrimSpace(code)
}

// ParseStandard reads an order's pieces-per-box field. The field is stored
// as text and occasionally carries stray characters; only digits count.
// No digits means 0.
func ParseStandard(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}

// valueOf prices a piece count against the unit-value table. A missing
// code contributes zero, never an error.
func valueOf(unitValues map[string]decimal.Decimal, product string, pieces int) decimal.Decimal {
	if pieces <= 0 {
		return decimal.Zero
	}
	unit, ok := unitValues[ItemCode(product)]
	if !ok {
		return decimal.Zero
	}
	return unit.Mul(decimal.NewFromInt(int64(pieces)))
}
