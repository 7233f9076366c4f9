package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type ItemRepo struct{ DB *pgxpool.Pool }

const itemSelect = `
	SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price
	FROM order_items i
	JOIN products p ON p.id = i.product_id`

func queryItems(ctx context.Context, q postgres.Querier, suffix string, args ...any) ([]Item, error) {
	rows, err := q.Query(ctx, itemSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func insertItem(ctx context.Context, q postgres.Querier, orderID int64, in ItemInput) (int64, error) {
	if err := in.Check(); err != nil {
		return 0, err
	}
	var price int64
	if in.Price != nil {
		price = *in.Price
	} else {
		p, err := capturePrice(ctx, q, in.ProductID)
		if err != nil {
			return 0, fmt.Errorf("capture price: %w", err)
		}
		price = p
	}

	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1,$2,$3,$4)
		RETURNING id`, orderID, in.ProductID, in.Quantity, price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order item: %w", postgres.Translate(err))
	}
	return id, nil
}

func (r *ItemRepo) List(ctx context.Context, orderID *int64, p listing.Params) ([]Item, int, error) {
	var w listing.Where
	if orderID != nil {
		w.Add("i.order_id = ?", *orderID)
	}
	w.Like(p.Search, "p.name")

	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM order_items i
		JOIN products p ON p.id = i.product_id`+w.SQL(), w.Args()...).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("count order items: %w", err)
	}

	limit, args := w.Page(p)
	out, err := queryItems(ctx, r.DB, w.SQL()+" ORDER BY i.id"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list order items: %w", err)
	}
	return out, count, nil
}

func (r *ItemRepo) Get(ctx context.Context, id int64) (Item, error) {
	items, err := queryItems(ctx, r.DB, " WHERE i.id = $1", id)
	if err != nil {
		return Item{}, fmt.Errorf("get order item %d: %w", id, err)
	}
	if len(items) == 0 {
		return Item{}, fmt.Errorf("get order item %d: %w", id, postgres.ErrNotFound)
	}
	return items[0], nil
}

func (r *ItemRepo) Create(ctx context.Context, orderID int64, in ItemInput) (Item, error) {
	id, err := insertItem(ctx, r.DB, orderID, in)
	if err != nil {
		return Item{}, err
	}
	return r.Get(ctx, id)
}

func (r *ItemRepo) Update(ctx context.Context, id int64, patch ItemPatch) (Item, error) {
	if patch.Quantity != nil && *patch.Quantity < 0 || patch.Price != nil && *patch.Price < 0 {
		return Item{}, fmt.Errorf("%w: quantity and price must not be negative", ErrInvalidInput)
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE order_items
		SET quantity = COALESCE($2, quantity),
		    price = COALESCE($3, price)
		WHERE id = $1`, id, patch.Quantity, patch.Price)
	if err != nil {
		return Item{}, fmt.Errorf("update order item %d: %w", id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return Item{}, fmt.Errorf("update order item %d: %w", id, postgres.ErrNotFound)
	}
	return r.Get(ctx, id)
}

// Delete returns the owning order id.
func (r *ItemRepo) Delete(ctx context.Context, id int64) (orderID int64, err error) {
	err = r.DB.QueryRow(ctx, `DELETE FROM order_items WHERE id=$1 RETURNING order_id`, id).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("delete order item %d: %w", id, postgres.Translate(err))
	}
	return orderID, nil
}
