package app

import (
	"context"
	"errors"
	"testing"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/domain"
)

type fakeRepo struct {
	entries map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[string]bool)}
}

func (f *fakeRepo) key(userID, productID string) string { return userID + "/" + productID }

func (f *fakeRepo) Add(ctx context.Context, userID, productID string) error {
	f.entries[f.key(userID, productID)] = true
	return nil
}

func (f *fakeRepo) Remove(ctx context.Context, userID, productID string) error {
	delete(f.entries, f.key(userID, productID))
	return nil
}

func (f *fakeRepo) List(ctx context.Context, userID string) ([]domain.Item, error) {
	var out []domain.Item
	for k := range f.entries {
		out = append(out, domain.Item{UserID: userID, ProductID: k})
	}
	return out, nil
}

func (f *fakeRepo) Contains(ctx context.Context, userID, productID string) (bool, error) {
	return f.entries[f.key(userID, productID)], nil
}

func (f *fakeRepo) Clear(ctx context.Context, userID string) error {
	f.entries = make(map[string]bool)
	return nil
}

func TestWishlistRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	if err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Adding twice stays a single entry.
	if err := svc.Add(ctx, "u1", "p1"); err != nil {
		t.Fatalf("Add twice: %v", err)
	}

	ok, err := svc.Contains(ctx, "u1", "p1")
	if err != nil || !ok {
		t.Fatalf("Contains = %v, %v; want true", ok, err)
	}

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	if err := svc.Remove(ctx, "u1", "p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := svc.Contains(ctx, "u1", "p1"); ok {
		t.Error("entry survived Remove")
	}
	// Removing again is a no-op.
	if err := svc.Remove(ctx, "u1", "p1"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}

func TestWishlistValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	if err := svc.Add(ctx, "", "p1"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Add without user: err = %v", err)
	}
	if err := svc.Add(ctx, "u1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Add without product: err = %v", err)
	}
	if _, err := svc.List(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("List without user: err = %v", err)
	}
	if err := svc.Clear(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Clear without user: err = %v", err)
	}
}
