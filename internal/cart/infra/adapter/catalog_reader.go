package adapter

import (
	"context"
	"errors"

	catalogapp "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/app"
)

// CatalogReader bridges the catalog service to the cart's product lookup
// port so cart lines can be re-labelled after a product edit.
type CatalogReader struct {
	catalog *catalogapp.Service
}

func NewCatalogReader(catalog *catalogapp.Service) *CatalogReader {
	return &CatalogReader{catalog: catalog}
}

func (r *CatalogReader) Snapshot(ctx context.Context, productID string) (string, []string, error) {
	p, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) {
			return "", nil, nil
		}
		return "", nil, err
	}
	return p.Name, p.Images, nil
}
