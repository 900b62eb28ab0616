package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/profile/app"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/profile/domain"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (domain.Profile, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile get: invalid user id: %w", err)
	}

	var p domain.Profile
	err = r.pool.QueryRow(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), created_at, updated_at
		FROM profiles WHERE id = $1`,
		uid,
	).Scan(&p.UserID, &p.Email, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, app.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("profile get: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, userID string, fullName, avatarURL *string) (domain.Profile, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile update: invalid user id: %w", err)
	}

	var p domain.Profile
	err = r.pool.QueryRow(ctx, `
		UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			avatar_url = COALESCE($3, avatar_url),
			updated_at = now()
		WHERE id = $1
		RETURNING id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), created_at, updated_at`,
		uid, fullName, avatarURL,
	).Scan(&p.UserID, &p.Email, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, app.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("profile update: %w", err)
	}
	return p, nil
}
