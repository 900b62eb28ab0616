package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/app"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, brand, description, category, images, price_amount, currency, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		id, p.Name, p.Brand, p.Description, p.Category, p.Images,
		p.Price.Amount, p.Price.Currency, p.Stock)

	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Product{}, fmt.Errorf("product create: %w", err)
	}

	p.ID = id.String()
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	var (
		p        domain.Product
		amount   int64
		currency string
	)
	err = r.pool.QueryRow(ctx, `
		SELECT id, name, brand, description, category, images, price_amount, currency, stock, created_at, updated_at
		FROM products WHERE id = $1`,
		productID).Scan(&productID, &p.Name, &p.Brand, &p.Description, &p.Category,
		&p.Images, &amount, &currency, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("product get: %w", err)
	}

	p.ID = productID.String()
	p.Price = money.Money{Currency: currency, Amount: amount}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Product, string, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		where = append(where, "(name ILIKE "+arg("%"+f.Query+"%")+" OR brand ILIKE "+arg("%"+f.Query+"%")+")")
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	if strings.TrimSpace(f.Cursor) != "" {
		cur, err := uuid.Parse(strings.TrimSpace(f.Cursor))
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		where = append(where, "id > "+arg(cur))
	}

	q := `SELECT id, name, brand, description, category, images, price_amount, currency, stock, created_at, updated_at FROM products`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id LIMIT " + arg(f.Limit)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", fmt.Errorf("product list: %w", err)
	}
	defer rows.Close()

	var (
		out        []domain.Product
		nextCursor string
	)
	for rows.Next() {
		var (
			p        domain.Product
			id       uuid.UUID
			amount   int64
			currency string
		)
		if err := rows.Scan(&id, &p.Name, &p.Brand, &p.Description, &p.Category,
			&p.Images, &amount, &currency, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("product list: scan: %w", err)
		}
		p.ID = id.String()
		p.Price = money.Money{Currency: currency, Amount: amount}
		out = append(out, p)
		nextCursor = p.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("product list: %w", err)
	}

	if len(out) < f.Limit {
		nextCursor = ""
	}
	return out, nextCursor, nil
}
