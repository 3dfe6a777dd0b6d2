// Package token issues and verifies the HS256 access and refresh tokens shared
// by the gateway and the user service.
package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const MinSecretLength = 32

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// RoleClaim decodes the roles claim from either a list or a single string.
// Any other shape, null included, decodes to an empty set.
type RoleClaim []string

func (rc *RoleClaim) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		roles := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			roles = append(roles, fmt.Sprint(item))
		}
		*rc = roles
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*rc = []string{single}
		return nil
	}

	*rc = []string{}
	return nil
}

// Claims carried by both token kinds. Subject holds the username.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"userId"`
	Roles  RoleClaim `json:"roles,omitempty"`
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret string, accessTTL, refreshTTL time.Duration, opts ...Option) (*Service, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	s := &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *Service) IssueAccessToken(username, userID string, roles []string) (string, error) {
	return s.issue(username, userID, roles, s.accessTTL)
}

func (s *Service) IssueRefreshToken(username, userID string, roles []string) (string, error) {
	return s.issue(username, userID, roles, s.refreshTTL)
}

func (s *Service) issue(username, userID string, roles []string, ttl time.Duration) (string, error) {
	now := s.now()
	if roles == nil {
		roles = []string{}
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Roles:  roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. It returns ErrTokenExpired for
// an otherwise valid token past its expiry and ErrInvalidToken for anything else.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractRoles returns the role set carried by claims, never nil.
func ExtractRoles(claims *Claims) []string {
	if claims == nil || claims.Roles == nil {
		return []string{}
	}
	out := make([]string, len(claims.Roles))
	copy(out, claims.Roles)
	return out
}
