package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/internal/utils/storage"
	"recipe-sharing-platform/pkg/category"
	"recipe-sharing-platform/pkg/favorite"
	"recipe-sharing-platform/pkg/image"
	"recipe-sharing-platform/pkg/policy"
	"recipe-sharing-platform/pkg/rating"
	"recipe-sharing-platform/pkg/recipe"
	"recipe-sharing-platform/pkg/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activityRecipeSubmitted = "Recipe Submitted"

type (
	AdminService interface {
		GetDashboard(ctx context.Context, actor policy.Actor) (domain.DashboardResponse, error)
		GetUsers(ctx context.Context, actor policy.Actor, query domain.UserQuery) ([]domain.AdminUserResponse, int64, error)
		UpdateUserRole(ctx context.Context, actor policy.Actor, userID string, req domain.UpdateRoleRequest) error
		ToggleLockout(ctx context.Context, actor policy.Actor, userID string) (bool, error)
		DeleteUser(ctx context.Context, actor policy.Actor, userID string) error
		DeleteRecipe(ctx context.Context, actor policy.Actor, recipeID string) error
	}

	adminService struct {
		adminRepository    AdminRepository
		userRepository     user.UserRepository
		recipeRepository   recipe.RecipeRepository
		categoryRepository category.CategoryRepository
		ratingRepository   rating.RatingRepository
		favoriteRepository favorite.FavoriteRepository
		store              storage.ImageStore
	}
)

func NewAdminService(
	adminRepository AdminRepository,
	userRepository user.UserRepository,
	recipeRepository recipe.RecipeRepository,
	categoryRepository category.CategoryRepository,
	ratingRepository rating.RatingRepository,
	favoriteRepository favorite.FavoriteRepository,
	store storage.ImageStore,
) AdminService {
	return &adminService{
		adminRepository:    adminRepository,
		userRepository:     userRepository,
		recipeRepository:   recipeRepository,
		categoryRepository: categoryRepository,
		ratingRepository:   ratingRepository,
		favoriteRepository: favoriteRepository,
		store:              store,
	}
}

func (s *adminService) GetDashboard(ctx context.Context, actor policy.Actor) (domain.DashboardResponse, error) {
	if !policy.CanModerate(actor) {
		return domain.DashboardResponse{}, domain.ErrForbidden
	}

	var res domain.DashboardResponse
	var err error

	recipeCounts := []struct {
		status string
		target *int64
	}{
		{domain.StatusFilterAll, &res.TotalRecipes},
		{domain.StatusFilterPending, &res.PendingRecipes},
		{domain.StatusFilterApproved, &res.ApprovedRecipes},
		{domain.StatusFilterRejected, &res.RejectedRecipes},
	}
	for _, c := range recipeCounts {
		if *c.target, err = s.recipeRepository.CountRecipes(ctx, c.status); err != nil {
			return domain.DashboardResponse{}, err
		}
	}

	if res.TotalUsers, err = s.userRepository.CountUsers(ctx, ""); err != nil {
		return domain.DashboardResponse{}, err
	}
	if res.TotalChefs, err = s.userRepository.CountUsers(ctx, domain.RoleChef); err != nil {
		return domain.DashboardResponse{}, err
	}
	if res.TotalCategories, err = s.categoryRepository.CountCategories(ctx); err != nil {
		return domain.DashboardResponse{}, err
	}
	if res.TotalRatings, err = s.ratingRepository.CountRatings(ctx); err != nil {
		return domain.DashboardResponse{}, err
	}
	if res.TotalFavorites, err = s.favoriteRepository.CountFavorites(ctx); err != nil {
		return domain.DashboardResponse{}, err
	}

	recent, err := s.recipeRepository.GetRecentRecipes(ctx, domain.RecentActivityLimit)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	res.RecentActivity = make([]domain.RecentActivity, 0, len(recent))
	for _, r := range recent {
		res.RecentActivity = append(res.RecentActivity, ToRecentActivity(r))
	}

	return res, nil
}

func (s *adminService) GetUsers(ctx context.Context, actor policy.Actor, query domain.UserQuery) ([]domain.AdminUserResponse, int64, error) {
	if !policy.CanModerate(actor) {
		return nil, 0, domain.ErrForbidden
	}

	if strings.EqualFold(query.Role, "all") {
		query.Role = ""
	}

	users, count, err := s.adminRepository.GetUsers(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	recipeCounts, err := s.adminRepository.GetRecipeCounts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.AdminUserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, domain.AdminUserResponse{
			UserResponse: user.ToUserResponse(u),
			IsDisabled:   u.IsDisabled,
			RecipeCount:  recipeCounts[u.ID],
		})
	}
	return res, count, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, actor policy.Actor, userID string, req domain.UpdateRoleRequest) error {
	if !policy.CanModerate(actor) {
		return domain.ErrForbidden
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	if !domain.IsValidRole(req.Role) {
		return domain.ErrInvalidRole
	}

	target, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if target.ID.String() == actor.UserID {
		return domain.ErrChangeOwnRole
	}

	return s.adminRepository.UpdateUserRole(ctx, target.ID, req.Role)
}

// ToggleLockout flips the disabled flag and returns the new value.
func (s *adminService) ToggleLockout(ctx context.Context, actor policy.Actor, userID string) (bool, error) {
	if !policy.CanModerate(actor) {
		return false, domain.ErrForbidden
	}

	target, err := s.findUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if target.ID.String() == actor.UserID {
		return false, domain.ErrDisableOwnAccount
	}

	disabled := !target.IsDisabled
	if err := s.adminRepository.SetDisabled(ctx, target.ID, disabled); err != nil {
		return false, err
	}
	return disabled, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor policy.Actor, userID string) error {
	if !policy.CanModerate(actor) {
		return domain.ErrForbidden
	}

	target, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if target.ID.String() == actor.UserID {
		return domain.ErrDeleteOwnAccount
	}

	keys, err := s.adminRepository.DeleteUser(ctx, target.ID)
	if err != nil {
		return err
	}

	if err := image.Discard(ctx, s.store, keys...); err != nil {
		zap.L().Warn("failed to delete stored images",
			zap.String("operation", "delete user"),
			zap.String("user_id", target.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (s *adminService) DeleteRecipe(ctx context.Context, actor policy.Actor, recipeID string) error {
	if !policy.CanModerate(actor) {
		return domain.ErrForbidden
	}
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ErrRecipeNotFound
	}

	r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if !policy.CanDelete(actor, r) {
		return domain.ErrRecipeNotFound
	}

	keys, err := s.recipeRepository.DeleteRecipe(ctx, r.ID)
	if err != nil {
		return err
	}

	if err := image.Discard(ctx, s.store, keys...); err != nil {
		zap.L().Warn("failed to delete stored images",
			zap.String("operation", "admin delete recipe"),
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *adminService) findUser(ctx context.Context, userID string) (*entities.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func ToRecentActivity(r *entities.Recipe) domain.RecentActivity {
	chef := ""
	if r.User != nil {
		chef = r.User.FullName()
	}
	return domain.RecentActivity{
		Type:        activityRecipeSubmitted,
		Description: fmt.Sprintf("%s submitted \"%s\"", chef, r.Title),
		Timestamp:   r.CreatedAt,
		Status:      r.Status(),
		RecipeID:    r.ID.String(),
	}
}
