package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/profile/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Update(ctx context.Context, userID string, fullName, avatarURL *string) (domain.Profile, error)
}

type Service struct {
	repo ProfileRepo
}

func NewService(repo ProfileRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if userID == "" {
		return domain.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.repo.Get(ctx, userID)
}

// UpdateProfile folds first and last name into the stored full name.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateRequest) (domain.Profile, error) {
	if userID == "" {
		return domain.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var fullName *string
	if req.FirstName != nil || req.LastName != nil {
		var first, last string
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		joined := strings.TrimSpace(first + " " + last)
		fullName = &joined
	}

	if fullName == nil && req.AvatarURL == nil {
		return domain.Profile{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	return s.repo.Update(ctx, userID, fullName, req.AvatarURL)
}
