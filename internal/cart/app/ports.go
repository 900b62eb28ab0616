package app

import (
	"context"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
)

// RemoteCart is the authenticated cart's source of truth. Every method is a
// suspension point; each either succeeds or fails as a unit server-side.
type RemoteCart interface {
	Read(ctx context.Context, accountID string) ([]domain.RawItem, error)
	// Upsert increments the (product, size) row's quantity, creating the row
	// when absent.
	Upsert(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error
	// SetQuantity sets the quantity absolutely.
	SetQuantity(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error
	// Remove deletes the row; removing an absent row is not an error.
	Remove(ctx context.Context, accountID, productID string, size domain.Size) error
	Clear(ctx context.Context, accountID string) error
}

// GuestStore holds a guest's line items under a single namespaced key.
// Operations are synchronous and never suspend.
type GuestStore interface {
	Get(key string) ([]domain.RawItem, bool)
	Set(key string, items []domain.RawItem)
	Remove(key string)
}

// ProductReader supplies display snapshots for cart lines. Lookups are
// best-effort: a product that no longer resolves keeps its placeholder name
// and still counts toward totals.
type ProductReader interface {
	Snapshot(ctx context.Context, productID string) (name string, images []string, err error)
}
