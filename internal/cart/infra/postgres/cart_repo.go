package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
)

// CartRepo stores one row per (user, product, size) with a uniqueness
// constraint on that identity; increments happen server-side so concurrent
// adds cannot lose updates.
type CartRepo struct {
	pool *pgxpool.Pool
}

func NewCartRepo(pool *pgxpool.Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

func (r *CartRepo) Read(ctx context.Context, accountID string) ([]domain.RawItem, error) {
	userUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("cart read: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ci.product_id, ci.selected_size, ci.quantity, ci.created_at,
		       COALESCE(p.name, ''), COALESCE(p.images, '{}'), COALESCE(p.price_amount, 0)
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.id`,
		userUUID)
	if err != nil {
		return nil, fmt.Errorf("cart read: %w", err)
	}
	defer rows.Close()

	var items []domain.RawItem
	for rows.Next() {
		var (
			it        domain.RawItem
			productID uuid.UUID
		)
		if err := rows.Scan(&productID, &it.Size, &it.Quantity, &it.AddedAt,
			&it.ProductName, &it.ProductImages, &it.ProductPrice); err != nil {
			return nil, fmt.Errorf("cart read: scan: %w", err)
		}
		it.ProductID = productID.String()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart read: %w", err)
	}

	return items, nil
}

func (r *CartRepo) Upsert(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error {
	userUUID, productUUID, err := parseIDs(accountID, productID)
	if err != nil {
		return fmt.Errorf("cart upsert: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, selected_size, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id, selected_size)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		uuid.New(), userUUID, productUUID, string(size), qty)
	if err != nil {
		return fmt.Errorf("cart upsert: %w", err)
	}
	return nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error {
	userUUID, productUUID, err := parseIDs(accountID, productID)
	if err != nil {
		return fmt.Errorf("cart set quantity: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, selected_size, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id, selected_size)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		uuid.New(), userUUID, productUUID, string(size), qty)
	if err != nil {
		return fmt.Errorf("cart set quantity: %w", err)
	}
	return nil
}

func (r *CartRepo) Remove(ctx context.Context, accountID, productID string, size domain.Size) error {
	userUUID, productUUID, err := parseIDs(accountID, productID)
	if err != nil {
		return fmt.Errorf("cart remove: %w", err)
	}

	// Deleting an absent row is a no-op by design.
	_, err = r.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND selected_size = $3`,
		userUUID, productUUID, string(size))
	if err != nil {
		return fmt.Errorf("cart remove: %w", err)
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, accountID string) error {
	userUUID, err := uuid.Parse(accountID)
	if err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}

	_, err = r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userUUID)
	if err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func parseIDs(accountID, productID string) (uuid.UUID, uuid.UUID, error) {
	userUUID, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userUUID, productUUID, nil
}
