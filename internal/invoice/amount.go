package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer("₹", "", "₨", "", "Rs", "", ",", "", "%", "", " ", "", "\u00a0", "")

// ParseAmount converts printed money, quantity or rate text such as
// "₹ 1,000.00", "-0.40" or "1.5%" to a decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountNoise.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrNumericParse)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNumericParse, s)
	}
	return d, nil
}
