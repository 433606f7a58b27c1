package objects

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseDecimal converts a loosely typed JSON value into a decimal. Values
// travel as decimal strings to avoid float rounding in transit, but clients
// historically also send raw numbers.
func ParseDecimal(v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Zero, fmt.Errorf("cannot parse decimal from %T", v)
	}
}
