package repository

import (
	"context"
	"errors"
	"fmt"

	"game-platform/internal/data/entity"
	"game-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	Update(ctx context.Context, profile *entity.UserProfile) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{db: db, log: log}
}

func (pr *profileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, first_name, last_name, birth_date,
		                           bio, country, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pr.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.BirthDate,
		profile.Bio,
		profile.Country,
		profile.AvatarURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		pr.log.Error("Failed to create profile", zap.Error(err), zap.String("user_id", profile.UserID.String()))
		return fmt.Errorf("create profile for user %s: %w", profile.UserID.String(), err)
	}
	return nil
}

func (pr *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	query := `
		SELECT id, user_id, first_name, last_name, birth_date, bio, country,
		       avatar_url, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var p entity.UserProfile
	err := pr.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.BirthDate,
		&p.Bio,
		&p.Country,
		&p.AvatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find profile for user %s: %w", userID.String(), err)
	}
	return &p, nil
}

func (pr *profileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET first_name = $2, last_name = $3, birth_date = $4, bio = $5,
		    country = $6, avatar_url = $7, updated_at = $8
		WHERE user_id = $1
	`

	result, err := pr.db.Exec(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.BirthDate,
		profile.Bio,
		profile.Country,
		profile.AvatarURL,
		profile.UpdatedAt,
	)
	if err != nil {
		pr.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", profile.UserID.String()))
		return fmt.Errorf("update profile for user %s: %w", profile.UserID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update profile for user %s: %w", profile.UserID.String(), ErrNotFound)
	}
	return nil
}
