package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
)

// CartRepo keeps one document per account under carts/{accountID} with an
// embedded items array. Mutations run inside Firestore transactions so the
// read-modify-write of the array cannot interleave across clients.
type CartRepo struct {
	client *firestore.Client

	// CartCol can be overridden when the deployment uses a different
	// collection name.
	CartCol string
}

func NewCartRepo(client *firestore.Client) *CartRepo {
	return &CartRepo{client: client, CartCol: "carts"}
}

type cartDoc struct {
	Items     []cartItem `firestore:"items"`
	UpdatedAt time.Time  `firestore:"updatedAt"`
}

type cartItem struct {
	ProductID     string    `firestore:"productId"`
	Size          string    `firestore:"size"`
	Quantity      int64     `firestore:"quantity"`
	ProductName   string    `firestore:"productName"`
	ProductImages []string  `firestore:"productImages"`
	AddedAt       time.Time `firestore:"addedAt"`
}

func (r *CartRepo) doc(accountID string) *firestore.DocumentRef {
	return r.client.Collection(r.CartCol).Doc(accountID)
}

func (r *CartRepo) Read(ctx context.Context, accountID string) ([]domain.RawItem, error) {
	snap, err := r.doc(accountID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cart read: %w", err)
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("cart read: decode: %w", err)
	}

	items := make([]domain.RawItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, domain.RawItem{
			ProductID:     it.ProductID,
			Size:          it.Size,
			Quantity:      it.Quantity,
			ProductName:   it.ProductName,
			ProductImages: it.ProductImages,
			AddedAt:       it.AddedAt,
		})
	}
	return items, nil
}

func (r *CartRepo) Upsert(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error {
	return r.mutate(ctx, accountID, "cart upsert", func(items []cartItem) []cartItem {
		for i := range items {
			if items[i].ProductID == productID && domain.ParseSize(items[i].Size) == size {
				items[i].Quantity += qty
				return items
			}
		}
		return append(items, cartItem{
			ProductID: productID,
			Size:      string(size),
			Quantity:  qty,
			AddedAt:   time.Now(),
		})
	})
}

func (r *CartRepo) SetQuantity(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error {
	return r.mutate(ctx, accountID, "cart set quantity", func(items []cartItem) []cartItem {
		for i := range items {
			if items[i].ProductID == productID && domain.ParseSize(items[i].Size) == size {
				items[i].Quantity = qty
				return items
			}
		}
		return append(items, cartItem{
			ProductID: productID,
			Size:      string(size),
			Quantity:  qty,
			AddedAt:   time.Now(),
		})
	})
}

func (r *CartRepo) Remove(ctx context.Context, accountID, productID string, size domain.Size) error {
	return r.mutate(ctx, accountID, "cart remove", func(items []cartItem) []cartItem {
		out := items[:0]
		for _, it := range items {
			if it.ProductID == productID && domain.ParseSize(it.Size) == size {
				continue
			}
			out = append(out, it)
		}
		return out
	})
}

func (r *CartRepo) Clear(ctx context.Context, accountID string) error {
	_, err := r.doc(accountID).Delete(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func (r *CartRepo) mutate(ctx context.Context, accountID, op string, apply func([]cartItem) []cartItem) error {
	ref := r.doc(accountID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var doc cartDoc

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			if derr := snap.DataTo(&doc); derr != nil {
				return derr
			}
		case isNotFound(err):
			// First mutation for this account creates the document.
		default:
			return err
		}

		doc.Items = apply(doc.Items)
		doc.UpdatedAt = time.Now()
		return tx.Set(ref, doc)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
