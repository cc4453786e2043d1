package profile

import (
	"context"
	"errors"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/internal/utils/storage"
	"recipe-sharing-platform/pkg/favorite"
	"recipe-sharing-platform/pkg/image"
	"recipe-sharing-platform/pkg/policy"
	"recipe-sharing-platform/pkg/rating"
	"recipe-sharing-platform/pkg/recipe"
	"recipe-sharing-platform/pkg/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const memberSinceLayout = "January 2006"

type (
	ProfileService interface {
		GetProfile(ctx context.Context, actor policy.Actor) (domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, actor policy.Actor, req domain.UpdateProfileRequest) (domain.ProfileResponse, error)
		UploadProfileImage(ctx context.Context, actor policy.Actor, upload *domain.ImageUpload) (string, error)
		DeleteProfileImage(ctx context.Context, actor policy.Actor) error
		ChangePassword(ctx context.Context, actor policy.Actor, req domain.ChangePasswordRequest) error
	}

	profileService struct {
		userRepository     user.UserRepository
		recipeRepository   recipe.RecipeRepository
		ratingRepository   rating.RatingRepository
		favoriteRepository favorite.FavoriteRepository
		store              storage.ImageStore
	}
)

func NewProfileService(
	userRepository user.UserRepository,
	recipeRepository recipe.RecipeRepository,
	ratingRepository rating.RatingRepository,
	favoriteRepository favorite.FavoriteRepository,
	store storage.ImageStore,
) ProfileService {
	return &profileService{
		userRepository:     userRepository,
		recipeRepository:   recipeRepository,
		ratingRepository:   ratingRepository,
		favoriteRepository: favoriteRepository,
		store:              store,
	}
}

func (s *profileService) GetProfile(ctx context.Context, actor policy.Actor) (domain.ProfileResponse, error) {
	u, err := s.currentUser(ctx, actor)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	return s.profile(ctx, u)
}

func (s *profileService) UpdateProfile(ctx context.Context, actor policy.Actor, req domain.UpdateProfileRequest) (domain.ProfileResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.ProfileResponse{}, err
	}

	u, err := s.currentUser(ctx, actor)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if !strings.EqualFold(username, u.Username) {
		taken, err := s.userRepository.UsernameExists(ctx, username, u.ID.String())
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		if taken {
			return domain.ProfileResponse{}, domain.ErrUsernameTaken
		}
	}

	if !strings.EqualFold(email, u.Email) {
		taken, err := s.userRepository.EmailExists(ctx, email, u.ID.String())
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		if taken {
			return domain.ProfileResponse{}, domain.ErrEmailRegisteredToOther
		}
	}

	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.Username = username
	u.Email = email
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ProfileResponse{}, user.DuplicateError(ctx, s.userRepository, username, u.ID.String(), domain.ErrEmailRegisteredToOther)
		}
		return domain.ProfileResponse{}, err
	}

	return s.profile(ctx, u)
}

// UploadProfileImage replaces the profile image and returns its URL.
func (s *profileService) UploadProfileImage(ctx context.Context, actor policy.Actor, upload *domain.ImageUpload) (string, error) {
	if upload == nil || upload.Size == 0 {
		return "", domain.ErrProfileImageRequired
	}
	if err := image.ValidateProfileImage(upload); err != nil {
		return "", err
	}

	u, err := s.currentUser(ctx, actor)
	if err != nil {
		return "", err
	}

	key, err := image.Save(ctx, s.store, storage.FolderProfiles, upload)
	if err != nil {
		return "", err
	}

	previous := u.ProfileImageKey
	u.ProfileImageKey = key
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		s.discard(ctx, u, key)
		return "", err
	}

	s.discard(ctx, u, previous)
	return recipe.ProfileImageURL(u), nil
}

func (s *profileService) DeleteProfileImage(ctx context.Context, actor policy.Actor) error {
	u, err := s.currentUser(ctx, actor)
	if err != nil {
		return err
	}
	if u.ProfileImageKey == "" {
		return domain.ErrNoProfileImage
	}

	previous := u.ProfileImageKey
	u.ProfileImageKey = ""
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		return err
	}

	s.discard(ctx, u, previous)
	return nil
}

func (s *profileService) ChangePassword(ctx context.Context, actor policy.Actor, req domain.ChangePasswordRequest) error {
	u, err := s.currentUser(ctx, actor)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(u.Password, req.CurrentPassword) {
		return domain.ErrCurrentPasswordIncorrect
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	if req.CurrentPassword == req.NewPassword {
		return domain.ErrPasswordUnchanged
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	return s.userRepository.UpdateUser(ctx, u)
}

func (s *profileService) currentUser(ctx context.Context, actor policy.Actor) (*entities.User, error) {
	if actor.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}

	u, err := s.userRepository.GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *profileService) profile(ctx context.Context, u *entities.User) (domain.ProfileResponse, error) {
	stats := domain.ProfileStatistics{
		MemberSince: u.CreatedAt.Format(memberSinceLayout),
	}

	var err error
	if stats.TotalFavorites, err = s.favoriteRepository.CountFavoritesByUser(ctx, u.ID.String()); err != nil {
		return domain.ProfileResponse{}, err
	}
	if stats.TotalRatingsGiven, err = s.ratingRepository.CountRatingsByUser(ctx, u.ID.String()); err != nil {
		return domain.ProfileResponse{}, err
	}

	if u.Role == domain.RoleChef {
		chef, err := s.recipeRepository.GetOwnerStatistics(ctx, u.ID.String())
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		stats.Chef = &chef
	}

	return domain.ProfileResponse{
		UserResponse:    user.ToUserResponse(u),
		ProfileImageURL: recipe.ProfileImageURL(u),
		Statistics:      stats,
	}, nil
}

func (s *profileService) discard(ctx context.Context, u *entities.User, keys ...string) {
	if err := image.Discard(ctx, s.store, keys...); err != nil {
		zap.L().Warn("failed to delete stored images",
			zap.String("operation", "profile image"),
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
	}
}
