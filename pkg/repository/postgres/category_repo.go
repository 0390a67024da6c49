package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkuzn/unimarket/pkg/category"
)

// CategoryRepository implements category.Repository backed by PostgreSQL.
// The constructor seeds the default category directory, so a fresh database
// is browsable immediately.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) (*CategoryRepository, error) {
	r := &CategoryRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CategoryRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return err
	}
	for _, name := range category.DefaultNames {
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]category.Category, 0, len(category.DefaultNames))
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT 1 FROM categories WHERE id = $1`, id)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
