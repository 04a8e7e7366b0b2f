package rounding_test

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gstbook/internal/rounding"
)

func ExampleRound() {
	for _, s := range []string{"10", "10.49", "10.5", "-10.5"} {
		fmt.Println(rounding.Round(decimal.RequireFromString(s), 0))
	}
	fmt.Println(rounding.Round(decimal.RequireFromString("10.49"), 1))
	// Output:
	// 10
	// 10
	// 11
	// -11
	// 10.5
}
