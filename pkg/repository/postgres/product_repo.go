package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkuzn/unimarket/pkg/product"
)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) (*ProductRepository, error) {
	r := &ProductRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProductRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	owner_id BIGINT NOT NULL REFERENCES users(id),
	category_id BIGINT NOT NULL REFERENCES categories(id),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price DOUBLE PRECISION NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	show_email BOOLEAN NOT NULL DEFAULT FALSE,
	show_whatsapp BOOLEAN NOT NULL DEFAULT FALSE,
	show_messenger BOOLEAN NOT NULL DEFAULT FALSE,
	is_sold BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_owner ON products(owner_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
`)
	return err
}

const productColumns = `id, owner_id, category_id, title, description, price,
	location, image_url, show_email, show_whatsapp, show_messenger, is_sold, created_at`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.CategoryID, &p.Title, &p.Description,
		&p.Price, &p.Location, &p.ImageURL, &p.ShowEmail, &p.ShowWhatsapp,
		&p.ShowMessenger, &p.IsSold, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p product.Product) (product.Product, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO products (owner_id, category_id, title, description, price,
	location, image_url, show_email, show_whatsapp, show_messenger, is_sold, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11)
RETURNING `+productColumns,
		p.OwnerID, p.CategoryID, p.Title, p.Description, p.Price,
		p.Location, p.ImageURL, p.ShowEmail, p.ShowWhatsapp, p.ShowMessenger, p.CreatedAt)
	return scanProduct(row)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (product.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, f product.ListFilter) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if f.CategoryID > 0 {
		query += ` WHERE category_id = $1`
		args = append(args, f.CategoryID)
	}
	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, f.Limit, f.Offset)
	}
	return r.queryProducts(ctx, query, args...)
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]product.Product, error) {
	return r.queryProducts(ctx, `
SELECT `+productColumns+` FROM products
WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p product.Product) (product.Product, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE products SET category_id = $2, title = $3, description = $4, price = $5,
	location = $6, image_url = $7, show_email = $8, show_whatsapp = $9, show_messenger = $10
WHERE id = $1
RETURNING `+productColumns,
		p.ID, p.CategoryID, p.Title, p.Description, p.Price,
		p.Location, p.ImageURL, p.ShowEmail, p.ShowWhatsapp, p.ShowMessenger)
	return scanProduct(row)
}

func (r *ProductRepository) MarkSold(ctx context.Context, id int64) (product.Product, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE products SET is_sold = TRUE WHERE id = $1 RETURNING `+productColumns, id)
	return scanProduct(row)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}
