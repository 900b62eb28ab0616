package app

import (
	"context"
	"errors"
	"strings"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))

	if p.Name == "" || p.Price.Currency == "" || p.Price.Amount <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	switch p.Category {
	case "men", "women", "unisex":
	case "":
		p.Category = "unisex"
	default:
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, f domain.ListFilter) ([]domain.Product, string, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))

	return s.repo.List(ctx, f)
}
