package utils

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// NumericToDecimal converts a pgtype.Numeric row value into a decimal,
// treating NULL and broken values as zero so a single bad row never sinks
// a report.
func NumericToDecimal(value pgtype.Numeric) decimal.Decimal {
	if !value.Valid {
		return decimal.Zero
	}
	text, err := value.MarshalJSON()
	if err != nil {
		return decimal.Zero
	}
	out, err := decimal.NewFromString(string(text))
	if err != nil {
		return decimal.Zero
	}
	return out
}
