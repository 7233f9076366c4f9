package catalog

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
	"github.com/ariefcatur/go-shop-admin.git/internal/slug"
)

var ErrInvalidInput = errors.New("invalid input")

type ImageInput struct {
	Number int    `json:"number" validate:"gte=0"`
	Image  string `json:"image" validate:"required,max=255"`
}

type VariantInput struct {
	ColorID   *int64 `json:"color_id" validate:"omitempty,gt=0"`
	SizeID    *int64 `json:"size_id" validate:"omitempty,gt=0"`
	Price     int64  `json:"price" validate:"gte=0"`
	Discount  *int   `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Inventory int    `json:"inventory" validate:"gte=0"`
}

func (in VariantInput) Check() error {
	if err := pricing.ValidateDiscount(in.Discount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Price < 0 || in.Inventory < 0 {
		return fmt.Errorf("%w: price and inventory must not be negative", ErrInvalidInput)
	}
	return nil
}

// ProductInput creates a product together with its inline images and variants.
type ProductInput struct {
	Name     string         `json:"name" validate:"required,max=255"`
	Slug     string         `json:"slug" validate:"max=255"`
	Content  string         `json:"content"`
	Image    string         `json:"image" validate:"max=255"`
	Status   Status         `json:"status"`
	IsActive *bool          `json:"is_active"`
	ColorIDs []int64        `json:"color_ids" validate:"dive,gt=0"`
	SizeIDs  []int64        `json:"size_ids" validate:"dive,gt=0"`
	Images   []ImageInput   `json:"images" validate:"dive"`
	Variants []VariantInput `json:"variants" validate:"dive"`
}

// Normalize fills the slug from the name and the default status, then checks the result.
func (in *ProductInput) Normalize() error {
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if !slug.Valid(in.Slug) {
		return fmt.Errorf("%w: slug %q", ErrInvalidInput, in.Slug)
	}
	if in.Status == "" {
		in.Status = StatusNone
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidInput, in.Status)
	}
	for _, v := range in.Variants {
		if err := v.Check(); err != nil {
			return err
		}
	}
	return nil
}

func (in ProductInput) active() bool { return in.IsActive == nil || *in.IsActive }

// ProductPatch updates only the fields that are set. ColorIDs and SizeIDs replace the whole set.
type ProductPatch struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Slug     *string  `json:"slug" validate:"omitempty,max=255"`
	Content  *string  `json:"content"`
	Image    *string  `json:"image" validate:"omitempty,max=255"`
	Status   *Status  `json:"status"`
	IsActive *bool    `json:"is_active"`
	ColorIDs *[]int64 `json:"color_ids"`
	SizeIDs  *[]int64 `json:"size_ids"`
}

func (p ProductPatch) Check() error {
	if p.Slug != nil && !slug.Valid(*p.Slug) {
		return fmt.Errorf("%w: slug %q", ErrInvalidInput, *p.Slug)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidInput, *p.Status)
	}
	return nil
}

type ImagePatch struct {
	Number *int    `json:"number" validate:"omitempty,gte=0"`
	Image  *string `json:"image" validate:"omitempty,min=1,max=255"`
}
