package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type OptionKind string

const (
	KindColor OptionKind = "color"
	KindSize  OptionKind = "size"
)

func (k OptionKind) table() string {
	if k == KindSize {
		return "sizes"
	}
	return "colors"
}

func (k OptionKind) linkTable() string { return "product_" + k.table() }

func (k OptionKind) linkColumn() string { return string(k) + "_id" }

// OptionRepo stores colors or sizes, depending on Kind.
type OptionRepo struct {
	DB   *pgxpool.Pool
	Kind OptionKind
}

func (r *OptionRepo) List(ctx context.Context, p listing.Params) ([]Option, int, error) {
	var w listing.Where
	w.Like(p.Search, "name")

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM `+r.Kind.table()+w.SQL(), w.Args()...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.Kind.table(), err)
	}

	limit, args := w.Page(p)
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM `+r.Kind.table()+w.SQL()+` ORDER BY id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.Kind.table(), err)
	}
	defer rows.Close()

	var out []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, count, rows.Err()
}

func (r *OptionRepo) Get(ctx context.Context, id int64) (Option, error) {
	var o Option
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM `+r.Kind.table()+` WHERE id=$1`, id).Scan(&o.ID, &o.Name)
	if err != nil {
		return Option{}, fmt.Errorf("get %s %d: %w", r.Kind, id, postgres.Translate(err))
	}
	return o, nil
}

func (r *OptionRepo) Create(ctx context.Context, name string) (Option, error) {
	var o Option
	err := r.DB.QueryRow(ctx, `INSERT INTO `+r.Kind.table()+`(name) VALUES ($1) RETURNING id, name`, name).
		Scan(&o.ID, &o.Name)
	if err != nil {
		return Option{}, fmt.Errorf("create %s: %w", r.Kind, postgres.Translate(err))
	}
	return o, nil
}

func (r *OptionRepo) Rename(ctx context.Context, id int64, name string) (Option, error) {
	var o Option
	err := r.DB.QueryRow(ctx, `UPDATE `+r.Kind.table()+` SET name=$2 WHERE id=$1 RETURNING id, name`, id, name).
		Scan(&o.ID, &o.Name)
	if err != nil {
		return Option{}, fmt.Errorf("rename %s %d: %w", r.Kind, id, postgres.Translate(err))
	}
	return o, nil
}

// Delete removes the option; variants using it are deleted with it.
func (r *OptionRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM `+r.Kind.table()+` WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.Kind, id, postgres.Translate(err))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %d: %w", r.Kind, id, postgres.ErrNotFound)
	}
	return nil
}

// ProductIDs lists the products showing this option, either in their
// color/size set or through a variant.
func (r *OptionRepo) ProductIDs(ctx context.Context, id int64) ([]int64, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id FROM `+r.Kind.linkTable()+` WHERE `+r.Kind.linkColumn()+` = $1
		UNION
		SELECT product_id FROM variants WHERE `+r.Kind.linkColumn()+` = $1
		ORDER BY 1`, id)
	if err != nil {
		return nil, fmt.Errorf("products of %s %d: %w", r.Kind, id, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var pid int64
		if err := rows.Scan(&pid); err != nil {
			return nil, err
		}
		ids = append(ids, pid)
	}
	return ids, rows.Err()
}
