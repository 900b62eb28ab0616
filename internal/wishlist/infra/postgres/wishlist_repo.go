package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/domain"
)

type WishlistRepo struct {
	pool *pgxpool.Pool
}

func NewWishlistRepo(pool *pgxpool.Pool) *WishlistRepo {
	return &WishlistRepo{pool: pool}
}

func (r *WishlistRepo) Add(ctx context.Context, userID, productID string) error {
	uid, pid, err := parseIDs(userID, productID)
	if err != nil {
		return fmt.Errorf("wishlist add: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`,
		uid, pid,
	)
	if err != nil {
		return fmt.Errorf("wishlist add: %w", err)
	}
	return nil
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	uid, pid, err := parseIDs(userID, productID)
	if err != nil {
		return fmt.Errorf("wishlist remove: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		uid, pid,
	); err != nil {
		return fmt.Errorf("wishlist remove: %w", err)
	}
	return nil
}

func (r *WishlistRepo) List(ctx context.Context, userID string) ([]domain.Item, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("wishlist list: invalid user id: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
			p.name, p.brand, p.images, p.currency, p.price_amount, p.stock
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`,
		uid,
	)
	if err != nil {
		return nil, fmt.Errorf("wishlist list: %w", err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		var (
			it           domain.Item
			id, wuid, pid uuid.UUID
		)
		if err := rows.Scan(&id, &wuid, &pid, &it.AddedAt,
			&it.ProductName, &it.ProductBrand, &it.Images,
			&it.Price.Currency, &it.Price.Amount, &it.Stock); err != nil {
			return nil, fmt.Errorf("wishlist list: scan: %w", err)
		}
		it.ID = id.String()
		it.UserID = wuid.String()
		it.ProductID = pid.String()
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wishlist list: rows: %w", err)
	}
	return out, nil
}

func (r *WishlistRepo) Contains(ctx context.Context, userID, productID string) (bool, error) {
	uid, pid, err := parseIDs(userID, productID)
	if err != nil {
		return false, fmt.Errorf("wishlist contains: %w", err)
	}
	var exists bool
	err = r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		uid, pid,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("wishlist contains: %w", err)
	}
	return exists, nil
}

func (r *WishlistRepo) Clear(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("wishlist clear: invalid user id: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, uid); err != nil {
		return fmt.Errorf("wishlist clear: %w", err)
	}
	return nil
}

func parseIDs(userID, productID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid product id: %w", err)
	}
	return uid, pid, nil
}
