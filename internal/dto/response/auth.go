package response

import (
	"time"

	"game-platform/internal/data/entity"
	"game-platform/pkg/utils"
)

const TokenTypeBearer = "Bearer"

type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	FirstName     string     `json:"firstName,omitempty"`
	LastName      string     `json:"lastName,omitempty"`
	AvatarURL     *string    `json:"avatarUrl,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	BirthDate     string     `json:"birthDate,omitempty"`
	Country       *string    `json:"country,omitempty"`
	Status        string     `json:"status"`
	Role          string     `json:"role"`
	Roles         []string   `json:"roles"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// AuthResponse is the login and refresh body. The refresh token travels only
// in the cookie and is never serialized.
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	TokenType    string        `json:"tokenType"`
	ExpiresIn    int64         `json:"expiresIn"`
	User         *UserResponse `json:"user,omitempty"`
	RefreshToken string        `json:"-"`
}

// UserToResponse maps a user and optional profile onto the public shape
func UserToResponse(user *entity.User, profile *entity.UserProfile, roles []string) *UserResponse {
	resp := &UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		Username:      user.Username,
		Status:        string(user.Status),
		Role:          user.Role,
		Roles:         utils.NormalizeRoles(roles),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		LastLoginAt:   user.LastLoginAt,
	}

	if profile != nil {
		resp.FirstName = profile.FirstName
		resp.LastName = profile.LastName
		resp.AvatarURL = profile.AvatarURL
		resp.Bio = profile.Bio
		resp.Country = profile.Country
		if profile.BirthDate != nil {
			resp.BirthDate = profile.BirthDate.Format(time.DateOnly)
		}
	}

	return resp
}

func UserWithProfileToResponse(u *entity.UserWithProfile) *UserResponse {
	return UserToResponse(&u.User, u.Profile, u.Roles)
}
