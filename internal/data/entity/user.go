package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusLocked UserStatus = "locked"
)

// Role names as stored in the roles table
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// DefaultUserRole is the legacy users.role column value for new accounts
const DefaultUserRole = "customer"

type User struct {
	Base
	Email         string     `db:"email"`
	Username      string     `db:"username"`
	PasswordHash  string     `db:"password"`
	Status        UserStatus `db:"status"`
	Role          string     `db:"role"`
	EmailVerified bool       `db:"email_verified"`
	LastLoginAt   *time.Time `db:"last_login_at"`
}

func (u *User) IsLocked() bool {
	return u.Status == UserStatusLocked
}

// FallbackRoles is used when the user has no user_roles rows
func (u *User) FallbackRoles() []string {
	if u.Role == "" {
		return []string{}
	}
	return []string{strings.ToUpper(u.Role)}
}

type UserProfile struct {
	Base
	UserID    uuid.UUID  `db:"user_id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	BirthDate *time.Time `db:"birth_date"`
	Bio       *string    `db:"bio"`
	Country   *string    `db:"country"`
	AvatarURL *string    `db:"avatar_url"`
}

type Role struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// UserWithProfile is a user joined with its profile and resolved roles
type UserWithProfile struct {
	User    User
	Profile *UserProfile
	Roles   []string
}
