package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/app"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

type ProductRepo struct {
	client *firestore.Client

	ProductsCol string
}

func NewProductRepo(client *firestore.Client) *ProductRepo {
	return &ProductRepo{client: client, ProductsCol: "products"}
}

type productDoc struct {
	Name        string    `firestore:"name"`
	Brand       string    `firestore:"brand"`
	Description string    `firestore:"description"`
	Category    string    `firestore:"category"`
	Images      []string  `firestore:"images"`
	PriceAmount int64     `firestore:"priceAmount"`
	Currency    string    `firestore:"currency"`
	Stock       int32     `firestore:"stock"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func (d productDoc) toDomain(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        d.Name,
		Brand:       d.Brand,
		Description: d.Description,
		Category:    d.Category,
		Images:      d.Images,
		Price:       money.Money{Currency: d.Currency, Amount: d.PriceAmount},
		Stock:       d.Stock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	ref := r.client.Collection(r.ProductsCol).NewDoc()
	now := time.Now()

	doc := productDoc{
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Category:    p.Category,
		Images:      p.Images,
		PriceAmount: p.Price.Amount,
		Currency:    p.Price.Currency,
		Stock:       p.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := ref.Set(ctx, doc); err != nil {
		return domain.Product{}, fmt.Errorf("product create: %w", err)
	}

	return doc.toDomain(ref.ID), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	snap, err := r.client.Collection(r.ProductsCol).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Product{}, app.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("product get: %w", err)
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.Product{}, fmt.Errorf("product get: decode: %w", err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// List pages by document id. The free-text query is applied client-side on
// name and brand; Firestore has no substring search and the catalog is small
// enough that filtering the page is acceptable.
func (r *ProductRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Product, string, error) {
	q := r.client.Collection(r.ProductsCol).Query
	if f.Category != "" {
		q = q.Where("category", "==", f.Category)
	}
	q = q.OrderBy(firestore.DocumentID, firestore.Asc)
	if strings.TrimSpace(f.Cursor) != "" {
		q = q.StartAfter(strings.TrimSpace(f.Cursor))
	}
	q = q.Limit(f.Limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var (
		out        []domain.Product
		fetched    int
		nextCursor string
		needle     = strings.ToLower(f.Query)
	)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("product list: %w", err)
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, "", fmt.Errorf("product list: decode: %w", err)
		}
		fetched++
		nextCursor = snap.Ref.ID

		if needle != "" &&
			!strings.Contains(strings.ToLower(doc.Name), needle) &&
			!strings.Contains(strings.ToLower(doc.Brand), needle) {
			continue
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}

	if fetched < f.Limit {
		nextCursor = ""
	}
	return out, nextCursor, nil
}
