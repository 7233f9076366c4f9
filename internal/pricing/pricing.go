// Package pricing holds the price arithmetic shared by variants and orders.
// Money is kept in whole currency units; discounts are whole percentages.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidDiscount = errors.New("discount must be between 0 and 100")

var hundred = decimal.NewFromInt(100)

// ValidateDiscount accepts nil (no discount) or a percentage in [0, 100].
func ValidateDiscount(discount *int) error {
	if discount == nil {
		return nil
	}
	if *discount < 0 || *discount > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidDiscount, *discount)
	}
	return nil
}

func hasDiscount(discount *int) bool { return discount != nil && *discount != 0 }

// VariantPrice returns price - floor(discount*price/100), or price when no discount is set.
func VariantPrice(price int64, discount *int) int64 {
	if !hasDiscount(discount) {
		return price
	}
	return price - (int64(*discount)*price)/100
}

func LineTotal(price int64, quantity int) int64 {
	return price * int64(quantity)
}

type Line struct {
	Price    int64
	Quantity int
}

func RawTotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += LineTotal(l.Price, l.Quantity)
	}
	return sum
}

// OrderTotal sums the lines and applies the order discount without truncation.
func OrderTotal(lines []Line, discount *int) decimal.Decimal {
	return ApplyDiscount(RawTotal(lines), discount)
}

// ApplyDiscount returns raw - (discount/100)*raw exactly.
func ApplyDiscount(raw int64, discount *int) decimal.Decimal {
	total := decimal.NewFromInt(raw)
	if !hasDiscount(discount) {
		return total
	}
	cut := decimal.NewFromInt(int64(*discount)).Div(hundred).Mul(total)
	return total.Sub(cut)
}
