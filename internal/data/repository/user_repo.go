package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-platform/internal/data/entity"
	"game-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Sortable user columns, keyed by the API field name
var userSortColumns = map[string]string{
	"createdAt":   "u.created_at",
	"username":    "u.username",
	"email":       "u.email",
	"lastLoginAt": "u.last_login_at",
}

type UserListParams struct {
	Limit  int
	Offset int
	SortBy string
	Desc   bool
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindWithProfile(ctx context.Context, id uuid.UUID) (*entity.UserWithProfile, error)
	FindAllWithProfile(ctx context.Context, params UserListParams) ([]*entity.UserWithProfile, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

const userColumns = `id, email, username, password, status, role, email_verified, created_at, updated_at, last_login_at`

func scanUser(row pgx.Row, user *entity.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Status,
		&user.Role,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
}

// Create inserts a new user. A unique email or username clash wraps ErrDuplicate.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, username, password, status, role,
		                   email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Status,
		user.Role,
		user.EmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("create user %s: %w: %w", user.Email, ErrDuplicate, err)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, arg), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := ur.findOne(ctx, "id = $1", id)
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}
	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := ur.findOne(ctx, "email = $1", email)
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := ur.findOne(ctx, "username = $1", username)
	if err != nil {
		ur.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}
	return user, nil
}

const userWithProfileSelect = `
	SELECT u.id, u.email, u.username, u.password, u.status, u.role,
	       u.email_verified, u.created_at, u.updated_at, u.last_login_at,
	       p.id, p.first_name, p.last_name, p.birth_date, p.bio, p.country,
	       p.avatar_url, p.created_at, p.updated_at,
	       COALESCE(array_agg(r.name::text) FILTER (WHERE r.name IS NOT NULL), '{}'::text[]) AS roles
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
`

func scanUserWithProfile(row pgx.Row) (*entity.UserWithProfile, error) {
	var (
		u          entity.User
		profileID  *uuid.UUID
		firstName  *string
		lastName   *string
		birthDate  *time.Time
		bio        *string
		country    *string
		avatarURL  *string
		pCreatedAt *time.Time
		pUpdatedAt *time.Time
		roles      []string
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Status, &u.Role,
		&u.EmailVerified, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
		&profileID, &firstName, &lastName, &birthDate, &bio, &country,
		&avatarURL, &pCreatedAt, &pUpdatedAt,
		&roles,
	)
	if err != nil {
		return nil, err
	}

	result := &entity.UserWithProfile{User: u, Roles: roles}
	if profileID != nil {
		profile := &entity.UserProfile{
			UserID:    u.ID,
			BirthDate: birthDate,
			Bio:       bio,
			Country:   country,
			AvatarURL: avatarURL,
		}
		profile.ID = *profileID
		if firstName != nil {
			profile.FirstName = *firstName
		}
		if lastName != nil {
			profile.LastName = *lastName
		}
		if pCreatedAt != nil {
			profile.CreatedAt = *pCreatedAt
		}
		if pUpdatedAt != nil {
			profile.UpdatedAt = *pUpdatedAt
		}
		result.Profile = profile
	}
	if len(result.Roles) == 0 {
		result.Roles = u.FallbackRoles()
	}

	return result, nil
}

// FindWithProfile loads a user with its profile and role names
func (ur *userRepository) FindWithProfile(ctx context.Context, id uuid.UUID) (*entity.UserWithProfile, error) {
	query := userWithProfileSelect + ` WHERE u.id = $1 GROUP BY u.id, p.id`

	result, err := scanUserWithProfile(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user with profile", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user with profile %s: %w", id.String(), err)
	}
	return result, nil
}

// FindAllWithProfile retrieves a page of users. Unknown sort fields fall back to created_at.
func (ur *userRepository) FindAllWithProfile(ctx context.Context, params UserListParams) ([]*entity.UserWithProfile, error) {
	column, ok := userSortColumns[params.SortBy]
	if !ok {
		column = userSortColumns["createdAt"]
	}
	direction := "ASC"
	if params.Desc {
		direction = "DESC"
	}

	query := userWithProfileSelect + `
		GROUP BY u.id, p.id
		ORDER BY ` + column + ` ` + direction + ` NULLS LAST, u.id
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", params.Limit),
			zap.Int("offset", params.Offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", params.Limit, params.Offset, err)
	}
	defer rows.Close()

	var users []*entity.UserWithProfile
	for rows.Next() {
		user, err := scanUserWithProfile(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}
	return count, nil
}

func (ur *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, at)
	if err != nil {
		ur.log.Error("Failed to update last login", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("update last login %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update last login %s: %w", id.String(), ErrNotFound)
	}
	return nil
}

// Delete removes the user; profile and role links cascade
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user %s: %w", id.String(), ErrNotFound)
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
