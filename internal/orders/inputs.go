package orders

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
)

var ErrInvalidInput = errors.New("invalid input")

// ItemInput adds a line; a nil Price captures the product's cheapest variant price.
type ItemInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Price     *int64 `json:"price" validate:"omitempty,gte=0"`
}

type OrderInput struct {
	IsPaid   bool        `json:"is_paid"`
	Discount *int        `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Items    []ItemInput `json:"items" validate:"dive"`
}

func (in OrderInput) Check() error {
	if err := pricing.ValidateDiscount(in.Discount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, it := range in.Items {
		if err := it.Check(); err != nil {
			return err
		}
	}
	return nil
}

func (in ItemInput) Check() error {
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// OrderPatch sets is_paid and discount when given; ClearDiscount removes the discount.
type OrderPatch struct {
	IsPaid        *bool `json:"is_paid"`
	Discount      *int  `json:"discount" validate:"omitempty,gte=0,lte=100"`
	ClearDiscount bool  `json:"clear_discount"`
}

func (p OrderPatch) Check() error {
	if p.ClearDiscount && p.Discount != nil {
		return fmt.Errorf("%w: discount and clear_discount are exclusive", ErrInvalidInput)
	}
	if err := pricing.ValidateDiscount(p.Discount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

type ItemPatch struct {
	Quantity *int   `json:"quantity" validate:"omitempty,gte=0"`
	Price    *int64 `json:"price" validate:"omitempty,gte=0"`
}
