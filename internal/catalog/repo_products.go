package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type ProductRepo struct{ DB *pgxpool.Pool }

type ProductFilter struct {
	Status   *Status
	IsActive *bool
	Created  listing.DateRange
}

const productColumns = `p.id, p.name, p.slug, p.content, p.image, p.status, p.is_active, p.datetime_created, p.datetime_updated`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Slug, &p.Content, &p.Image, &p.Status, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepo) queryProducts(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := attach(ctx, r.DB, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveProducts returns active products ordered by id, each with its images.
func (r *ProductRepo) ActiveProducts(ctx context.Context) ([]Product, error) {
	out, err := r.queryProducts(ctx, `SELECT `+productColumns+` FROM products p WHERE p.is_active ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("active products: %w", err)
	}
	return out, nil
}

// SearchActive matches term against name, slug and content of active products.
func (r *ProductRepo) SearchActive(ctx context.Context, term string) ([]Product, error) {
	var w listing.Where
	w.Add("p.is_active")
	w.Like(term, "p.name", "p.slug", "p.content")
	out, err := r.queryProducts(ctx, `SELECT `+productColumns+` FROM products p`+w.SQL()+` ORDER BY p.id`, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return out, nil
}

// Get loads a product with images, colors, sizes and variants regardless of is_active.
func (r *ProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	return r.get(ctx, r.DB, id)
}

// GetActive is Get restricted to active products.
func (r *ProductRepo) GetActive(ctx context.Context, id int64) (Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !p.IsActive {
		return Product{}, fmt.Errorf("get product %d: %w", id, postgres.ErrNotFound)
	}
	return p, nil
}

func (r *ProductRepo) get(ctx context.Context, q querier, id int64) (Product, error) {
	var p Product
	if err := scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id=$1`, id), &p); err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, postgres.Translate(err))
	}
	one := []Product{p}
	if err := attach(ctx, q, one); err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	p = one[0]

	var w listing.Where
	w.Add("v.product_id = ?", id)
	vs, err := queryVariants(ctx, q, w.SQL()+" ORDER BY v.id", w.Args()...)
	if err != nil {
		return Product{}, fmt.Errorf("get product %d variants: %w", id, err)
	}
	p.Variants = nonNil(vs)
	return p, nil
}

// List returns one page of admin rows with image and variant counts.
func (r *ProductRepo) List(ctx context.Context, f ProductFilter, p listing.Params) ([]ProductRow, int, error) {
	var w listing.Where
	if f.Status != nil {
		w.Add("p.status = ?", string(*f.Status))
	}
	if f.IsActive != nil {
		w.Add("p.is_active = ?", *f.IsActive)
	}
	if since, ok := f.Created.Since(time.Now()); ok {
		w.Add("p.datetime_created >= ?", since)
	}
	w.Like(p.Search, "p.name", "p.slug", "p.content")

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+w.SQL(), w.Args()...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit, args := w.Page(p)
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.image, p.name, p.slug, p.status, p.is_active,
		       (SELECT COUNT(*) FROM product_images i WHERE i.product_id = p.id),
		       (SELECT COUNT(*) FROM variants v WHERE v.product_id = p.id)
		FROM products p`+w.SQL()+` ORDER BY p.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []ProductRow
	for rows.Next() {
		var row ProductRow
		if err := rows.Scan(&row.ID, &row.Image, &row.Name, &row.Slug, &row.Status, &row.IsActive,
			&row.ImagesCount, &row.VariantsCount); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, count, rows.Err()
}

// Create inserts the product, its color/size sets, images and variants in one transaction.
func (r *ProductRepo) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.Normalize(); err != nil {
		return Product{}, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO products (name, slug, content, image, status, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		in.Name, in.Slug, in.Content, in.Image, string(in.Status), in.active(),
	).Scan(&id)
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", postgres.Translate(err))
	}

	if err := linkOptions(ctx, tx, KindColor, id, in.ColorIDs); err != nil {
		return Product{}, err
	}
	if err := linkOptions(ctx, tx, KindSize, id, in.SizeIDs); err != nil {
		return Product{}, err
	}
	for _, im := range in.Images {
		if _, err := insertImage(ctx, tx, id, im); err != nil {
			return Product{}, err
		}
	}
	for _, v := range in.Variants {
		if _, err := insertVariant(ctx, tx, id, v); err != nil {
			return Product{}, err
		}
	}

	p, err := r.get(ctx, tx, id)
	if err != nil {
		return Product{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Product{}, err
	}
	return p, nil
}

func linkOptions(ctx context.Context, q querier, kind OptionKind, productID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO `+kind.linkTable()+` (product_id, `+kind.linkColumn()+`)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, productID, ids)
	if err != nil {
		return fmt.Errorf("link %s: %w", kind.table(), postgres.Translate(err))
	}
	return nil
}

func replaceOptions(ctx context.Context, q querier, kind OptionKind, productID int64, ids []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM `+kind.linkTable()+` WHERE product_id=$1`, productID); err != nil {
		return fmt.Errorf("unlink %s: %w", kind.table(), err)
	}
	return linkOptions(ctx, q, kind, productID, ids)
}

// Update applies the patch and always bumps datetime_updated.
func (r *ProductRepo) Update(ctx context.Context, id int64, patch ProductPatch) (Product, error) {
	if err := patch.Check(); err != nil {
		return Product{}, err
	}

	sets := []string{"datetime_updated = now()"}
	args := []any{id}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Image != nil {
		set("image", *patch.Image)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var got int64
	err = tx.QueryRow(ctx, `UPDATE products SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING id`, args...).Scan(&got)
	if err != nil {
		return Product{}, fmt.Errorf("update product %d: %w", id, postgres.Translate(err))
	}
	if patch.ColorIDs != nil {
		if err := replaceOptions(ctx, tx, KindColor, id, *patch.ColorIDs); err != nil {
			return Product{}, err
		}
	}
	if patch.SizeIDs != nil {
		if err := replaceOptions(ctx, tx, KindSize, id, *patch.SizeIDs); err != nil {
			return Product{}, err
		}
	}

	p, err := r.get(ctx, tx, id)
	if err != nil {
		return Product{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete removes the product with its images and variants. It fails with
// postgres.ErrProtected while any order item references the product.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delete product %d: %w", id, postgres.ErrNotFound)
	}
	return nil
}
