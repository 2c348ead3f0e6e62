package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are carried through the system as integer centavos. Decimal
// math only happens at the edges: parsing staff keypad input and
// formatting values for display and receipts.

var centsFactor = decimal.NewFromInt(100)

// QuickTenderDenominations are the fixed cash denominations offered as
// one-tap buttons on the tender screen, in centavos.
var QuickTenderDenominations = []int64{200, 500, 1000, 2000, 5000, 10000}

// ParseAmount converts a staff-entered decimal string into centavos.
// Accepts "12.50" and "12,50". Empty, negative, or unparseable input
// is treated as zero: the till clamps bad numeric input instead of
// rejecting it.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if d.IsNegative() {
		return 0
	}
	return d.Mul(centsFactor).IntPart()
}

// Format renders centavos as a BRL currency string, e.g. "R$ 12,50".
func Format(cents int64) string {
	d := decimal.NewFromInt(cents).Div(centsFactor)
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(s, ".", ",")

	// Thousands separators on the integer part.
	if i := strings.Index(s, ","); i > 3 {
		var b strings.Builder
		intPart := s[:i]
		for n, r := range intPart {
			if n > 0 && (len(intPart)-n)%3 == 0 {
				b.WriteByte('.')
			}
			b.WriteRune(r)
		}
		s = b.String() + s[i:]
	}

	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

// FormatPlain renders centavos as a bare decimal string ("12.50"),
// used on receipts where the currency symbol is printed separately.
func FormatPlain(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}
