package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
)

type Order struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"create_datetime"`
	IsPaid    bool      `json:"is_paid"`
	Discount  *int      `json:"discount"`
	Items     []Item    `json:"items"`
}

func (o Order) lines() []pricing.Line {
	out := make([]pricing.Line, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	return out
}

func (o Order) RawTotal() int64 { return pricing.RawTotal(o.lines()) }

// TotalPrice is the sum of line totals less the order discount, untruncated.
func (o Order) TotalPrice() decimal.Decimal { return pricing.OrderTotal(o.lines(), o.Discount) }

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		ItemsCount int             `json:"items_count"`
		TotalPrice decimal.Decimal `json:"total_price"`
	}{plain(o), len(o.Items), o.TotalPrice()})
}

type Item struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

func (i Item) TotalPrice() int64 { return pricing.LineTotal(i.Price, i.Quantity) }

func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		TotalPrice int64 `json:"item_total_price"`
	}{plain(i), i.TotalPrice()})
}

// Row is one line of the admin order list.
type Row struct {
	ID         int64           `json:"id"`
	CreatedAt  time.Time       `json:"create_datetime"`
	IsPaid     bool            `json:"is_paid"`
	Discount   *int            `json:"discount"`
	ItemsCount int             `json:"items_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
