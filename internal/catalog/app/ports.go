package app

import (
	"context"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Product, string, error)
}
