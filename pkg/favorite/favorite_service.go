package favorite

import (
	"context"
	"errors"
	"time"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/metrics"
	"recipe-sharing-platform/pkg/policy"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteService interface {
		AddFavorite(ctx context.Context, actor policy.Actor, recipeID string) error
		RemoveFavorite(ctx context.Context, actor policy.Actor, recipeID string) error
		CheckFavorite(ctx context.Context, actor policy.Actor, recipeID string) (domain.CheckFavoriteResponse, error)
		GetFavorites(ctx context.Context, actor policy.Actor, query domain.FavoriteQuery) ([]domain.FavoriteResponse, int64, error)
		ToggleFavorite(ctx context.Context, actor policy.Actor, recipeID string) (domain.ToggleFavoriteResponse, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, recipeRepository recipe.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
	}
}

func (s *favoriteService) AddFavorite(ctx context.Context, actor policy.Actor, recipeID string) error {
	if actor.IsAnonymous() {
		return domain.ErrUnauthenticated
	}

	r, err := s.favoritableRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	exists, err := s.favoriteRepository.IsFavorite(ctx, actor.UserID, recipeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrFavoriteExists
	}

	return s.add(ctx, actor, r)
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, actor policy.Actor, recipeID string) error {
	if actor.IsAnonymous() {
		return domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ErrFavoriteNotFound
	}

	removed, err := s.favoriteRepository.RemoveFavorite(ctx, actor.UserID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrFavoriteNotFound
	}

	metrics.FavoriteChanges.WithLabelValues("remove").Inc()
	return nil
}

func (s *favoriteService) CheckFavorite(ctx context.Context, actor policy.Actor, recipeID string) (domain.CheckFavoriteResponse, error) {
	if actor.IsAnonymous() {
		return domain.CheckFavoriteResponse{}, domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.CheckFavoriteResponse{IsFavorite: false}, nil
	}

	exists, err := s.favoriteRepository.IsFavorite(ctx, actor.UserID, recipeID)
	if err != nil {
		return domain.CheckFavoriteResponse{}, err
	}
	return domain.CheckFavoriteResponse{IsFavorite: exists}, nil
}

func (s *favoriteService) GetFavorites(ctx context.Context, actor policy.Actor, query domain.FavoriteQuery) ([]domain.FavoriteResponse, int64, error) {
	if actor.IsAnonymous() {
		return nil, 0, domain.ErrUnauthenticated
	}

	favorites, count, err := s.favoriteRepository.GetFavorites(ctx, actor.UserID, query)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.RecipeID)
	}
	stats, err := s.recipeRepository.GetRecipeStats(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		res = append(res, ToFavoriteResponse(f, stats[f.RecipeID]))
	}
	return res, count, nil
}

// ToggleFavorite removes the favorite when present and adds it otherwise.
// Unlike AddFavorite it refuses the caller's own recipes.
func (s *favoriteService) ToggleFavorite(ctx context.Context, actor policy.Actor, recipeID string) (domain.ToggleFavoriteResponse, error) {
	if actor.IsAnonymous() {
		return domain.ToggleFavoriteResponse{}, domain.ErrUnauthenticated
	}

	r, err := s.favoritableRecipe(ctx, recipeID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}
	if actor.Owns(r) {
		return domain.ToggleFavoriteResponse{}, domain.ErrFavoriteOwnRecipe
	}

	exists, err := s.favoriteRepository.IsFavorite(ctx, actor.UserID, recipeID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	if exists {
		if err := s.RemoveFavorite(ctx, actor, recipeID); err != nil {
			return domain.ToggleFavoriteResponse{}, err
		}
		return domain.ToggleFavoriteResponse{IsFavorite: false, Message: domain.MessageSuccessRemoveFavorite}, nil
	}

	if err := s.add(ctx, actor, r); err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}
	return domain.ToggleFavoriteResponse{IsFavorite: true, Message: domain.MessageSuccessAddFavorite}, nil
}

func (s *favoriteService) favoritableRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFavoritable
	}

	r, err := s.favoriteRepository.GetApprovedRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFavoritable
		}
		return nil, err
	}
	return r, nil
}

func (s *favoriteService) add(ctx context.Context, actor policy.Actor, r *entities.Recipe) error {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if err := s.favoriteRepository.AddFavorite(ctx, &entities.UserFavorite{
		UserID:    userID,
		RecipeID:  r.ID,
		DateAdded: time.Now().UTC(),
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrFavoriteExists
		}
		return err
	}

	metrics.FavoriteChanges.WithLabelValues("add").Inc()
	return nil
}

func ToFavoriteResponse(favorite *entities.UserFavorite, stats domain.RecipeStats) domain.FavoriteResponse {
	res := domain.FavoriteResponse{
		RecipeID:      favorite.RecipeID.String(),
		DateAdded:     favorite.DateAdded,
		AverageRating: stats.AverageRating,
		TotalRatings:  stats.TotalRatings,
		FavoriteCount: stats.FavoriteCount,
	}
	if r := favorite.Recipe; r != nil {
		res.RecipeTitle = r.Title
		res.RecipeDescription = r.Description
		res.PrepTimeMinutes = r.PrepTimeMinutes
		res.CookTimeMinutes = r.CookTimeMinutes
		res.Servings = r.Servings
		res.ImageURL = recipe.RecipeImageURL(r)
		if r.Category != nil {
			res.CategoryName = r.Category.Name
		}
		if r.User != nil {
			res.ChefName = r.User.FullName()
		}
	}
	return res
}
