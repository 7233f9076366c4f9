package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type ImageRepo struct{ DB *pgxpool.Pool }

const imageSelect = `
	SELECT i.id, i.product_id, p.name, i.number, i.image
	FROM product_images i
	JOIN products p ON p.id = i.product_id`

func queryImages(ctx context.Context, q querier, suffix string, args ...any) ([]Image, error) {
	rows, err := q.Query(ctx, imageSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		var im Image
		if err := rows.Scan(&im.ID, &im.ProductID, &im.ProductName, &im.Number, &im.Image); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

func (r *ImageRepo) List(ctx context.Context, productID *int64, p listing.Params) ([]Image, int, error) {
	var w listing.Where
	if productID != nil {
		w.Add("i.product_id = ?", *productID)
	}
	w.Like(p.Search, "p.name")

	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM product_images i
		JOIN products p ON p.id = i.product_id`+w.SQL(), w.Args()...).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("count images: %w", err)
	}

	limit, args := w.Page(p)
	out, err := queryImages(ctx, r.DB, w.SQL()+" ORDER BY i.id"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list images: %w", err)
	}
	return out, count, nil
}

func (r *ImageRepo) Get(ctx context.Context, id int64) (Image, error) {
	ims, err := queryImages(ctx, r.DB, " WHERE i.id = $1", id)
	if err != nil {
		return Image{}, fmt.Errorf("get image %d: %w", id, err)
	}
	if len(ims) == 0 {
		return Image{}, fmt.Errorf("get image %d: %w", id, postgres.ErrNotFound)
	}
	return ims[0], nil
}

func insertImage(ctx context.Context, q querier, productID int64, in ImageInput) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO product_images (product_id, number, image)
		VALUES ($1,$2,$3)
		RETURNING id`, productID, in.Number, in.Image).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", postgres.Translate(err))
	}
	return id, nil
}

func (r *ImageRepo) Create(ctx context.Context, productID int64, in ImageInput) (Image, error) {
	id, err := insertImage(ctx, r.DB, productID, in)
	if err != nil {
		return Image{}, err
	}
	return r.Get(ctx, id)
}

func (r *ImageRepo) Update(ctx context.Context, id int64, patch ImagePatch) (Image, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE product_images
		SET number = COALESCE($2, number),
		    image = COALESCE($3, image)
		WHERE id = $1`, id, patch.Number, patch.Image)
	if err != nil {
		return Image{}, fmt.Errorf("update image %d: %w", id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return Image{}, fmt.Errorf("update image %d: %w", id, postgres.ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *ImageRepo) Delete(ctx context.Context, id int64) (productID int64, err error) {
	err = r.DB.QueryRow(ctx, `DELETE FROM product_images WHERE id=$1 RETURNING product_id`, id).Scan(&productID)
	if err != nil {
		return 0, fmt.Errorf("delete image %d: %w", id, postgres.Translate(err))
	}
	return productID, nil
}
