package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/domain"
)

var ErrInvalidInput = errors.New("invalid input")

type WishlistRepo interface {
	// Add is idempotent per (user, product).
	Add(ctx context.Context, userID, productID string) error
	// Remove is a no-op when the entry is absent.
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]domain.Item, error)
	Contains(ctx context.Context, userID, productID string) (bool, error)
	Clear(ctx context.Context, userID string) error
}

type Service struct {
	repo WishlistRepo
}

func NewService(repo WishlistRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, userID, productID string) error {
	if err := checkIDs(userID, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if err := checkIDs(userID, productID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Item, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.repo.List(ctx, userID)
}

func (s *Service) Contains(ctx context.Context, userID, productID string) (bool, error) {
	if err := checkIDs(userID, productID); err != nil {
		return false, err
	}
	return s.repo.Contains(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.repo.Clear(ctx, userID)
}

func checkIDs(userID, productID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if productID == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return nil
}
