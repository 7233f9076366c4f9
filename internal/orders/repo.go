package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
)

type Repo struct{ DB *pgxpool.Pool }

type Filter struct {
	IsPaid  *bool
	Created listing.DateRange
}

// List returns one page of orders with item counts and totals.
func (r *Repo) List(ctx context.Context, f Filter, p listing.Params) ([]Row, int, error) {
	var w listing.Where
	if f.IsPaid != nil {
		w.Add("o.is_paid = ?", *f.IsPaid)
	}
	if since, ok := f.Created.Since(time.Now()); ok {
		w.Add("o.create_datetime >= ?", since)
	}
	w.Like(p.Search, "o.id::text", "o.create_datetime::text")

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders o`+w.SQL(), w.Args()...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	limit, args := w.Page(p)
	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.create_datetime, o.is_paid, o.discount,
		       COUNT(i.id), COALESCE(SUM(i.price * i.quantity), 0)::bigint
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id`+w.SQL()+`
		GROUP BY o.id
		ORDER BY o.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var raw int64
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.IsPaid, &row.Discount, &row.ItemsCount, &raw); err != nil {
			return nil, 0, err
		}
		row.TotalPrice = pricing.ApplyDiscount(raw, row.Discount)
		out = append(out, row)
	}
	return out, count, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	return getOrder(ctx, r.DB, id)
}

func getOrder(ctx context.Context, q postgres.Querier, id int64) (Order, error) {
	var o Order
	err := q.QueryRow(ctx, `SELECT id, create_datetime, is_paid, discount FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CreatedAt, &o.IsPaid, &o.Discount)
	if err != nil {
		return Order{}, fmt.Errorf("get order %d: %w", id, postgres.Translate(err))
	}

	var w listing.Where
	w.Add("i.order_id = ?", id)
	items, err := queryItems(ctx, q, w.SQL()+" ORDER BY i.id", w.Args()...)
	if err != nil {
		return Order{}, fmt.Errorf("get order %d items: %w", id, err)
	}
	if items == nil {
		items = []Item{}
	}
	o.Items = items
	return o, nil
}

// CreateTx inserts the order and its items in one transaction, capturing
// each item's price at this moment.
func (r *Repo) CreateTx(ctx context.Context, in OrderInput) (Order, error) {
	if err := in.Check(); err != nil {
		return Order{}, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO orders (is_paid, discount) VALUES ($1, $2) RETURNING id`, in.IsPaid, in.Discount).
		Scan(&id)
	if err != nil {
		return Order{}, fmt.Errorf("create order: %w", postgres.Translate(err))
	}
	for _, it := range in.Items {
		if _, err := insertItem(ctx, tx, id, it); err != nil {
			return Order{}, err
		}
	}

	o, err := getOrder(ctx, tx, id)
	if err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) Update(ctx context.Context, id int64, patch OrderPatch) (Order, error) {
	if err := patch.Check(); err != nil {
		return Order{}, err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET is_paid = COALESCE($2, is_paid),
		    discount = CASE WHEN $4 THEN NULL ELSE COALESCE($3, discount) END
		WHERE id = $1`, id, patch.IsPaid, patch.Discount, patch.ClearDiscount)
	if err != nil {
		return Order{}, fmt.Errorf("update order %d: %w", id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return Order{}, fmt.Errorf("update order %d: %w", id, postgres.ErrNotFound)
	}
	return r.Get(ctx, id)
}

// Delete removes the order together with its items.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delete order %d: %w", id, postgres.ErrNotFound)
	}
	return nil
}

// capturePrice returns the cheapest variant total price of the product.
func capturePrice(ctx context.Context, q postgres.Querier, productID int64) (int64, error) {
	rows, err := q.Query(ctx, `SELECT price, discount FROM variants WHERE product_id=$1`, productID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var best int64
	found := false
	for rows.Next() {
		var price int64
		var discount *int
		if err := rows.Scan(&price, &discount); err != nil {
			return 0, err
		}
		if tp := pricing.VariantPrice(price, discount); !found || tp < best {
			best, found = tp, true
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: product %d has no variant to take a price from", ErrInvalidInput, productID)
	}
	return best, nil
}
