package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
)

type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Status    Status    `json:"status"`
	IsActive  bool      `json:"is_active"`
	Colors    []Option  `json:"colors"`
	Sizes     []Option  `json:"sizes"`
	CreatedAt time.Time `json:"datetime_created"`
	UpdatedAt time.Time `json:"datetime_updated"`
	Images    []Image   `json:"images"`
	Variants  []Variant `json:"variants,omitempty"`
}

func (p Product) ColorsString() string { return joinNames(p.Colors) }

func (p Product) SizesString() string { return joinNames(p.Sizes) }

func joinNames(opts []Option) string {
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return strings.Join(names, " - ")
}

// ProductRow is one line of the admin product list.
type ProductRow struct {
	ID            int64  `json:"id"`
	Image         string `json:"image"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Status        Status `json:"status"`
	IsActive      bool   `json:"is_active"`
	ImagesCount   int    `json:"images_count"`
	VariantsCount int    `json:"variants_count"`
}

type Image struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product,omitempty"`
	Number      int    `json:"number"`
	Image       string `json:"image"`
}

// Option is a color or a size.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Variant struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product,omitempty"`
	ColorID     *int64  `json:"color_id"`
	Color       *string `json:"color"`
	SizeID      *int64  `json:"size_id"`
	Size        *string `json:"size"`
	Price       int64   `json:"price"`
	Discount    *int    `json:"discount"`
	Inventory   int     `json:"inventory"`
}

func (v Variant) TotalPrice() int64 { return pricing.VariantPrice(v.Price, v.Discount) }

func (v Variant) Band() Band { return BandOf(v.Inventory) }

func (v Variant) MarshalJSON() ([]byte, error) {
	type plain Variant
	return json.Marshal(struct {
		plain
		TotalPrice int64 `json:"total_price"`
		Band       Band  `json:"inventory_band"`
	}{plain(v), v.TotalPrice(), v.Band()})
}

// LowestPrice is the cheapest variant total price, ok is false without variants.
func (p Product) LowestPrice() (price int64, ok bool) {
	for i, v := range p.Variants {
		if tp := v.TotalPrice(); i == 0 || tp < price {
			price = tp
		}
	}
	return price, len(p.Variants) > 0
}
