package repository

import (
	"errors"

	"game-platform/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrNotFound is returned by update and delete operations that matched no record
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects a write
var ErrDuplicate = errors.New("duplicate record")

const pgUniqueViolation = "23505"

// Repository groups the user-service repositories
type Repository struct {
	User    UserRepository
	Profile ProfileRepository
	Role    RoleRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Profile: NewProfileRepository(db, log),
		Role:    NewRoleRepository(db, log),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
