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

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error
	FindNamesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{db: db, log: log}
}

func (rr *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := rr.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		rr.log.Error("Failed to find role", zap.Error(err), zap.String("role", name))
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}
	return &role, nil
}

func (rr *roleRepository) AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `
		INSERT INTO user_roles (id, user_id, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`

	if _, err := rr.db.Exec(ctx, query, uuid.New(), userID, roleID); err != nil {
		rr.log.Error("Failed to assign role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role_id", roleID.String()),
		)
		return fmt.Errorf("assign role %s to user %s: %w", roleID.String(), userID.String(), err)
	}
	return nil
}

func (rr *roleRepository) FindNamesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`

	rows, err := rr.db.Query(ctx, query, userID)
	if err != nil {
		rr.log.Error("Failed to find user roles", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find roles for user %s: %w", userID.String(), err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect roles for user %s: %w", userID.String(), err)
	}
	return names, nil
}
