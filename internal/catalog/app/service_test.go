package app

import (
	"context"
	"testing"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

type fakeRepo struct {
	lastFilter domain.ListFilter
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}
func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}
func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, string, error) {
	f.lastFilter = filter
	return nil, "", nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	valid := domain.Product{
		Name:     "Noir Intense",
		Brand:    "Apex",
		Category: "unisex",
		Price:    money.New("USD", 799),
	}

	t.Run("empty name -> invalid", func(t *testing.T) {
		p := valid
		p.Name = "   "
		if _, err := svc.CreateProduct(ctx, p); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("non-positive price -> invalid", func(t *testing.T) {
		p := valid
		p.Price.Amount = 0
		if _, err := svc.CreateProduct(ctx, p); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown category -> invalid", func(t *testing.T) {
		p := valid
		p.Category = "pets"
		if _, err := svc.CreateProduct(ctx, p); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty category defaults to unisex", func(t *testing.T) {
		p := valid
		p.Category = ""
		created, err := svc.CreateProduct(ctx, p)
		if err != nil {
			t.Fatal(err)
		}
		if created.Category != "unisex" {
			t.Fatalf("category = %q", created.Category)
		}
	})
}

func TestListClampsLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if _, _, err := svc.ListProducts(ctx, domain.ListFilter{Limit: 0}); err != nil {
		t.Fatal(err)
	}
	if repo.lastFilter.Limit != 20 {
		t.Fatalf("default limit = %d, want 20", repo.lastFilter.Limit)
	}

	if _, _, err := svc.ListProducts(ctx, domain.ListFilter{Limit: 500}); err != nil {
		t.Fatal(err)
	}
	if repo.lastFilter.Limit != 100 {
		t.Fatalf("clamped limit = %d, want 100", repo.lastFilter.Limit)
	}
}
