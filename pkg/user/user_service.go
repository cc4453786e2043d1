package user

import (
	"context"
	"errors"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Authenticate(ctx context.Context, req domain.LoginRequest) (*entities.User, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.AuthResponse{}, err
	}
	if req.Role != domain.RoleChef && req.Role != domain.RoleUser {
		return domain.AuthResponse{}, domain.ErrInvalidRegisterRole
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	taken, err := s.userRepository.UsernameExists(ctx, username, "")
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if taken {
		return domain.AuthResponse{}, domain.ErrUsernameTaken
	}

	taken, err = s.userRepository.EmailExists(ctx, email, "")
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if taken {
		return domain.AuthResponse{}, domain.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      req.Role,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.AuthResponse{}, DuplicateError(ctx, s.userRepository, username, "", domain.ErrEmailTaken)
		}
		return domain.AuthResponse{}, err
	}

	return s.authResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.Authenticate(ctx, req)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return s.authResponse(user), nil
}

// Authenticate checks credentials without issuing a token. Unknown users, wrong
// passwords and disabled accounts all fail with the same error.
func (s *userService) Authenticate(ctx context.Context, req domain.LoginRequest) (*entities.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByEmailOrUsername(ctx, strings.TrimSpace(req.EmailOrUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.Password, req.Password) || user.IsDisabled {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *userService) authResponse(user *entities.User) domain.AuthResponse {
	return domain.AuthResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
		User:  ToUserResponse(user),
	}
}

// DuplicateError resolves a unique index violation on users into the matching
// conflict. The username index is checked first; any other collision is
// reported as emailErr.
func DuplicateError(ctx context.Context, repo UserRepository, username string, excludeID string, emailErr error) error {
	taken, err := repo.UsernameExists(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	return emailErr
}

func ToUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
