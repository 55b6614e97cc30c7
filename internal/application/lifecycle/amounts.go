package lifecycle

import "github.com/shopspring/decimal"

// Topes exclusivos en valor absoluto que caben en NUMERIC(19,4) y NUMERIC(5,2).
var (
	MaxAmount  = decimal.New(1, 15)
	MaxTaxRate = decimal.New(1, 3)
)

// WithinBound indica si |d| < limit.
func WithinBound(d, limit decimal.Decimal) bool {
	return d.Abs().LessThan(limit)
}
