// Package money holds the storefront's monetary amount type.
//
// Amounts are decimals so that prices, totals and wallet balances add up
// exactly. JSON decoding is lenient: numbers and numeric strings are both
// accepted and anything unparseable decodes to zero, which is how stored
// cart prices have always been read.
package money

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal monetary value.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// New returns an amount of whole units.
func New(units int64) Amount {
	return Amount{d: decimal.NewFromInt(units)}
}

// FromFloat converts a float; used for values that arrive as JSON numbers.
func FromFloat(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

// Parse parses a decimal string such as "1499" or "12.50".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, err
	}
	return Amount{d: d}, nil
}

// Coerce parses s and falls back to zero.
func Coerce(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		return Zero
	}
	return a
}

// Decimal exposes the underlying decimal.
func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }
func (a Amount) Neg() Amount         { return Amount{d: a.d.Neg()} }

func (a Amount) Cmp(b Amount) int          { return a.d.Cmp(b.d) }
func (a Amount) Equal(b Amount) bool       { return a.d.Equal(b.d) }
func (a Amount) LessThan(b Amount) bool    { return a.d.LessThan(b.d) }
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }
func (a Amount) IsPositive() bool          { return a.d.IsPositive() }
func (a Amount) IsZero() bool              { return a.d.IsZero() }
func (a Amount) String() string            { return a.d.String() }

// Float64 is for metrics and sort comparisons only.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// Round rounds half away from zero to places decimal places.
func (a Amount) Round(places int32) Amount { return Amount{d: a.d.Round(places)} }

func (a Amount) MulInt(n int64) Amount { return Amount{d: a.d.Mul(decimal.NewFromInt(n))} }
func (a Amount) DivInt(n int64) Amount { return Amount{d: a.d.Div(decimal.NewFromInt(n))} }

// Sum adds all amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders the amount with a currency symbol and thousands separators,
// e.g. "₹ 12,499.5".
func (a Amount) Format(symbol string) string {
	s := a.d.Round(2).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	if symbol == "" {
		return out
	}
	return symbol + " " + out
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts numbers, numeric strings and null. Any other input
// decodes to zero instead of failing the surrounding document.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Zero
		return nil
	}
	if data[0] == '"' {
		data = bytes.Trim(data, `"`)
	}
	*a = Coerce(string(data))
	return nil
}
