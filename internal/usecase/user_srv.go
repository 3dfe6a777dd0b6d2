package usecase

import (
	"context"
	"errors"
	"time"

	"game-platform/internal/data/entity"
	"game-platform/internal/data/repository"
	"game-platform/internal/dto/request"
	"game-platform/internal/dto/response"
	"game-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	List(ctx context.Context, req request.UserListRequest) (*utils.Page[*response.UserResponse], error)
	Get(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
		now:  time.Now,
	}
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, utils.ErrValidation("Invalid user id", []utils.FieldError{
			{Field: "id", Message: "Must be a valid UUID", RejectedValue: userID},
		})
	}
	return id, nil
}

func userNotFound(userID string) error {
	return utils.ErrNotFound(utils.CodeUserNotFound, "User not found with id: "+userID)
}

func (us *userService) List(ctx context.Context, req request.UserListRequest) (*utils.Page[*response.UserResponse], error) {
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return nil, utils.ErrValidation("Invalid pagination parameters", details)
	}

	users, err := us.repo.User.FindAllWithProfile(ctx, repository.UserListParams{
		Limit:  req.Size,
		Offset: req.Offset(),
		SortBy: req.Sort,
		Desc:   req.Direction == "DESC",
	})
	if err != nil {
		return nil, err
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.UserWithProfileToResponse(u))
	}

	return utils.NewPage(items, req.Page, req.Size, total), nil
}

func (us *userService) Get(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindWithProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound(userID)
	}

	return response.UserWithProfileToResponse(user), nil
}

// UpdateProfile replaces the editable profile fields, creating the profile if it is missing
func (us *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validate
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return nil, utils.ErrValidation("Validation failed", details)
	}
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if req.BirthDate != nil && *req.BirthDate != "" {
		parsed, err := time.Parse(time.DateOnly, *req.BirthDate)
		if err != nil {
			return nil, utils.ErrValidation("Validation failed", []utils.FieldError{
				{Field: "birthDate", Message: "Must be a date in format 2006-01-02", RejectedValue: *req.BirthDate},
			})
		}
		birthDate = &parsed
	}

	// 2. Load user and profile
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound(userID)
	}

	profile, err := us.repo.Profile.FindByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Apply changes
	now := us.now().UTC()
	create := profile == nil
	if create {
		profile = &entity.UserProfile{
			Base:   entity.Base{ID: uuid.New(), CreatedAt: now},
			UserID: id,
		}
	}
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.BirthDate = birthDate
	profile.Bio = req.Bio
	profile.Country = req.Country
	profile.AvatarURL = req.AvatarURL
	profile.UpdatedAt = now

	if create {
		err = us.repo.Profile.Create(ctx, profile)
	} else {
		err = us.repo.Profile.Update(ctx, profile)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, userNotFound(userID)
	}
	if err != nil {
		return nil, err
	}

	roles, err := us.repo.Role.FindNamesByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = user.FallbackRoles()
	}

	us.log.Info("Profile updated", zap.String("user_id", userID))
	return response.UserToResponse(user, profile, roles), nil
}

func (us *userService) Delete(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	err = us.repo.User.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return userNotFound(userID)
	}
	return err
}
