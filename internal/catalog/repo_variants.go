package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type VariantRepo struct{ DB *pgxpool.Pool }

type VariantFilter struct {
	ProductID *int64
	Band      Band
}

const variantSelect = `
	SELECT v.id, v.product_id, p.name, v.color_id, c.name, v.size_id, s.name, v.price, v.discount, v.inventory
	FROM variants v
	JOIN products p ON p.id = v.product_id
	LEFT JOIN colors c ON c.id = v.color_id
	LEFT JOIN sizes s ON s.id = v.size_id`

func queryVariants(ctx context.Context, q querier, suffix string, args ...any) ([]Variant, error) {
	rows, err := q.Query(ctx, variantSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.ProductName, &v.ColorID, &v.Color, &v.SizeID, &v.Size,
			&v.Price, &v.Discount, &v.Inventory); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func variantWhere(f VariantFilter, search string) listing.Where {
	var w listing.Where
	if f.ProductID != nil {
		w.Add("v.product_id = ?", *f.ProductID)
	}
	if f.Band != "" {
		w.Add(f.Band.Condition("v.inventory"))
	}
	w.Like(search, "p.name", "c.name", "s.name")
	return w
}

func (r *VariantRepo) List(ctx context.Context, f VariantFilter, p listing.Params) ([]Variant, int, error) {
	w := variantWhere(f, p.Search)

	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM variants v
		JOIN products p ON p.id = v.product_id
		LEFT JOIN colors c ON c.id = v.color_id
		LEFT JOIN sizes s ON s.id = v.size_id`+w.SQL(), w.Args()...).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("count variants: %w", err)
	}

	limit, args := w.Page(p)
	out, err := queryVariants(ctx, r.DB, w.SQL()+" ORDER BY v.id"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list variants: %w", err)
	}
	return out, count, nil
}

func (r *VariantRepo) Get(ctx context.Context, id int64) (Variant, error) {
	return getVariant(ctx, r.DB, id)
}

func getVariant(ctx context.Context, q querier, id int64) (Variant, error) {
	vs, err := queryVariants(ctx, q, " WHERE v.id = $1", id)
	if err != nil {
		return Variant{}, fmt.Errorf("get variant %d: %w", id, err)
	}
	if len(vs) == 0 {
		return Variant{}, fmt.Errorf("get variant %d: %w", id, postgres.ErrNotFound)
	}
	return vs[0], nil
}

func insertVariant(ctx context.Context, q querier, productID int64, in VariantInput) (int64, error) {
	if err := in.Check(); err != nil {
		return 0, err
	}
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO variants (product_id, color_id, size_id, price, discount, inventory)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		productID, in.ColorID, in.SizeID, in.Price, in.Discount, in.Inventory,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert variant: %w", postgres.Translate(err))
	}
	return id, nil
}

func (r *VariantRepo) Create(ctx context.Context, productID int64, in VariantInput) (Variant, error) {
	id, err := insertVariant(ctx, r.DB, productID, in)
	if err != nil {
		return Variant{}, err
	}
	return r.Get(ctx, id)
}

// Update overwrites every field of the variant except its product.
func (r *VariantRepo) Update(ctx context.Context, id int64, in VariantInput) (Variant, error) {
	if err := in.Check(); err != nil {
		return Variant{}, err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE variants
		SET color_id=$2, size_id=$3, price=$4, discount=$5, inventory=$6
		WHERE id=$1`,
		id, in.ColorID, in.SizeID, in.Price, in.Discount, in.Inventory)
	if err != nil {
		return Variant{}, fmt.Errorf("update variant %d: %w", id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return Variant{}, fmt.Errorf("update variant %d: %w", id, postgres.ErrNotFound)
	}
	return r.Get(ctx, id)
}

// Delete returns the owning product id so callers can invalidate its views.
func (r *VariantRepo) Delete(ctx context.Context, id int64) (productID int64, err error) {
	err = r.DB.QueryRow(ctx, `DELETE FROM variants WHERE id=$1 RETURNING product_id`, id).Scan(&productID)
	if err != nil {
		return 0, fmt.Errorf("delete variant %d: %w", id, postgres.Translate(err))
	}
	return productID, nil
}
