package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-platform/internal/data/entity"
	"game-platform/internal/data/repository"
	"game-platform/internal/dto/request"
	"game-platform/internal/dto/response"
	"game-platform/pkg/database"
	"game-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgInvalidCredentials = "Invalid credentials"

const msgInvalidRefreshToken = "Invalid or expired refresh token"

// compared against when the user does not exist so both paths cost a bcrypt round
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3mDoxgIq0Jn5C6S9RZC0Qe."

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string)
}

type authService struct {
	repo   *repository.Repository
	tx     database.Transactor
	tokens TokenIssuer
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	tx database.Transactor,
	tokens TokenIssuer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tx:     tx,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return nil, utils.ErrValidation("Validation failed", details)
	}
	if len(req.Password) > utils.MaxPasswordBytes {
		return nil, utils.ErrValidation("Validation failed", []utils.FieldError{
			{Field: "password", Message: fmt.Sprintf("Must be at most %d bytes", utils.MaxPasswordBytes)},
		})
	}

	// 2. Email must be unused
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrAlreadyExists(utils.CodeUserAlreadyExists, "User already exists with email: "+req.Email)
	}

	// 3. Username must be unused
	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrAlreadyExists(utils.CodeUserAlreadyExists, "User already exists with username: "+req.Username)
	}

	// 4. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 5. User, profile and role in one transaction
	now := s.now().UTC()
	user := &entity.User{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:         req.Email,
		Username:      req.Username,
		PasswordHash:  hashed,
		Status:        entity.UserStatusActive,
		Role:          entity.DefaultUserRole,
		EmailVerified: false,
	}
	profile := &entity.UserProfile{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return err
		}
		if err := s.repo.Profile.Create(ctx, profile); err != nil {
			return err
		}
		role, err := s.repo.Role.FindByName(ctx, entity.RoleCustomer)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("role %s is not seeded", entity.RoleCustomer)
		}
		return s.repo.Role.AssignToUser(ctx, user.ID, role.ID)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, utils.ErrAlreadyExists(utils.CodeUserAlreadyExists, "User already exists with this email or username").Wrap(err)
	}
	if err != nil {
		return nil, fmt.Errorf("register user %s: %w", req.Email, err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return response.UserToResponse(user, profile, []string{entity.RoleCustomer}), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return nil, utils.ErrValidation("Validation failed", details)
	}

	// 2. Find user by email, then by username
	user, err := s.repo.User.FindByEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.UsernameOrEmail)
		if err != nil {
			return nil, err
		}
	}

	// 3. Unknown user, wrong password and locked account look the same to the caller
	if user == nil {
		utils.CheckPasswordHash(req.Password, dummyPasswordHash)
		s.log.Warn("Login for unknown user", zap.String("identifier", req.UsernameOrEmail))
		return nil, utils.NewAppError(utils.KindAuthFailed, utils.CodeAuthFailed, msgInvalidCredentials)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, utils.NewAppError(utils.KindAuthFailed, utils.CodeAuthFailed, msgInvalidCredentials)
	}
	if user.IsLocked() {
		s.log.Warn("Locked user tried to login", zap.String("user_id", user.ID.String()))
		return nil, utils.NewAppError(utils.KindAuthFailed, utils.CodeAuthFailed, msgInvalidCredentials)
	}

	// 4. Record login
	now := s.now().UTC()
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	user.UpdatedAt = now

	// 5. Issue tokens
	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*response.AuthResponse, error) {
	if refreshToken == "" {
		return nil, utils.NewAppError(utils.KindMissingToken, utils.CodeMissingToken, "Refresh token is required")
	}

	invalid := func(err error) error {
		return utils.NewAppError(utils.KindInvalidToken, utils.CodeInvalidRefreshToken, msgInvalidRefreshToken).Wrap(err)
	}

	// 1. Verify token
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, invalid(err)
	}

	// 2. Reload the user so deleted or locked accounts stop refreshing
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, invalid(err)
	}
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid(errors.New("user no longer exists"))
	}
	if user.IsLocked() {
		return nil, invalid(errors.New("user is locked"))
	}

	// 3. Issue a new access token and rotate the refresh token
	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("Token refreshed", zap.String("user_id", user.ID.String()))
	return resp, nil
}

// Logout keeps no server side state; tokens expire on their own.
func (s *authService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if claims, err := s.tokens.Verify(refreshToken); err == nil {
		s.log.Info("User logged out", zap.String("user_id", claims.UserID))
	}
}

// ==================== HELPER METHODS ====================

func (s *authService) resolveRoles(ctx context.Context, user *entity.User) ([]string, error) {
	roles, err := s.repo.Role.FindNamesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = user.FallbackRoles()
	}
	return utils.NormalizeRoles(roles), nil
}

func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	roles, err := s.resolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Username, user.ID.String(), roles)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.Username, user.ID.String(), roles)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		AccessToken:  accessToken,
		TokenType:    response.TokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         response.UserToResponse(user, profile, roles),
		RefreshToken: refreshToken,
	}, nil
}
