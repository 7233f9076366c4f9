package catalog

import (
	"context"

	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type querier = postgres.Querier

func collectIDs[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func imagesByProduct(ctx context.Context, q querier, productIDs []int64) (map[int64][]Image, error) {
	out := make(map[int64][]Image, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT id, product_id, number, image
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY number, id`, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var im Image
		if err := rows.Scan(&im.ID, &im.ProductID, &im.Number, &im.Image); err != nil {
			return nil, err
		}
		out[im.ProductID] = append(out[im.ProductID], im)
	}
	return out, rows.Err()
}

func optionsByProduct(ctx context.Context, q querier, kind OptionKind, productIDs []int64) (map[int64][]Option, error) {
	out := make(map[int64][]Option, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT l.product_id, o.id, o.name
		FROM `+kind.linkTable()+` l
		JOIN `+kind.table()+` o ON o.id = l.`+kind.linkColumn()+`
		WHERE l.product_id = ANY($1)
		ORDER BY o.name`, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pid int64
		var o Option
		if err := rows.Scan(&pid, &o.ID, &o.Name); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], o)
	}
	return out, rows.Err()
}

// attach fills images, colors and sizes on every product in place.
func attach(ctx context.Context, q querier, products []Product) error {
	ids := collectIDs(products, func(p Product) int64 { return p.ID })
	imgs, err := imagesByProduct(ctx, q, ids)
	if err != nil {
		return err
	}
	colors, err := optionsByProduct(ctx, q, KindColor, ids)
	if err != nil {
		return err
	}
	sizes, err := optionsByProduct(ctx, q, KindSize, ids)
	if err != nil {
		return err
	}
	for i := range products {
		id := products[i].ID
		products[i].Images = nonNil(imgs[id])
		products[i].Colors = nonNil(colors[id])
		products[i].Sizes = nonNil(sizes[id])
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
