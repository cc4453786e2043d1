package rating

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/metrics"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/pkg/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RatingService interface {
		CreateRating(ctx context.Context, actor policy.Actor, req domain.CreateRatingRequest) (domain.RatingResponse, error)
		SubmitRating(ctx context.Context, actor policy.Actor, recipeID string, req domain.UpdateRatingRequest) (domain.RatingResponse, bool, error)
		GetRating(ctx context.Context, actor policy.Actor, ratingID string) (domain.RatingResponse, error)
		UpdateRating(ctx context.Context, actor policy.Actor, ratingID string, req domain.UpdateRatingRequest) (domain.RatingResponse, error)
		DeleteRating(ctx context.Context, actor policy.Actor, ratingID string) error
		GetRecipeRatings(ctx context.Context, recipeID string, page domain.PageRequest) (domain.RecipeRatingsResponse, error)
		GetMyRatings(ctx context.Context, actor policy.Actor, page domain.PageRequest) ([]domain.RatingResponse, int64, error)
		GetUserRatingForRecipe(ctx context.Context, actor policy.Actor, recipeID string) (domain.UserRatingResponse, error)
	}

	ratingService struct {
		ratingRepository RatingRepository
		now              func() time.Time
	}
)

func NewRatingService(ratingRepository RatingRepository) RatingService {
	return &ratingService{
		ratingRepository: ratingRepository,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *ratingService) CreateRating(ctx context.Context, actor policy.Actor, req domain.CreateRatingRequest) (domain.RatingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.RatingResponse{}, err
	}

	recipe, err := s.rateableRecipe(ctx, actor, req.RecipeID)
	if err != nil {
		return domain.RatingResponse{}, err
	}

	_, err = s.ratingRepository.GetUserRating(ctx, actor.UserID, req.RecipeID)
	if err == nil {
		return domain.RatingResponse{}, domain.ErrAlreadyRated
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RatingResponse{}, err
	}

	rating, err := s.insert(ctx, actor, recipe, req.Score, req.Comment)
	if err != nil {
		return domain.RatingResponse{}, err
	}
	return s.reload(ctx, rating.ID.String())
}

// SubmitRating creates the caller's rating or overwrites the existing one. The
// boolean reports whether a new rating was created.
func (s *ratingService) SubmitRating(ctx context.Context, actor policy.Actor, recipeID string, req domain.UpdateRatingRequest) (domain.RatingResponse, bool, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.RatingResponse{}, false, err
	}

	recipe, err := s.rateableRecipe(ctx, actor, recipeID)
	if err != nil {
		return domain.RatingResponse{}, false, err
	}

	existing, err := s.ratingRepository.GetUserRating(ctx, actor.UserID, recipeID)
	switch {
	case err == nil:
		if err := s.overwrite(ctx, existing, req); err != nil {
			return domain.RatingResponse{}, false, err
		}
		res, err := s.reload(ctx, existing.ID.String())
		return res, false, err
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating, err := s.insert(ctx, actor, recipe, req.Score, req.Comment)
		if err != nil {
			return domain.RatingResponse{}, false, err
		}
		res, err := s.reload(ctx, rating.ID.String())
		return res, true, err
	default:
		return domain.RatingResponse{}, false, err
	}
}

func (s *ratingService) GetRating(ctx context.Context, actor policy.Actor, ratingID string) (domain.RatingResponse, error) {
	rating, err := s.ownRating(ctx, actor, ratingID)
	if err != nil {
		return domain.RatingResponse{}, err
	}
	return ToRatingResponse(rating), nil
}

func (s *ratingService) UpdateRating(ctx context.Context, actor policy.Actor, ratingID string, req domain.UpdateRatingRequest) (domain.RatingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.RatingResponse{}, err
	}

	rating, err := s.ownRating(ctx, actor, ratingID)
	if err != nil {
		return domain.RatingResponse{}, err
	}

	if err := s.overwrite(ctx, rating, req); err != nil {
		return domain.RatingResponse{}, err
	}
	return ToRatingResponse(rating), nil
}

func (s *ratingService) DeleteRating(ctx context.Context, actor policy.Actor, ratingID string) error {
	rating, err := s.ownRating(ctx, actor, ratingID)
	if err != nil {
		return err
	}

	if err := s.ratingRepository.DeleteRating(ctx, rating); err != nil {
		return err
	}

	metrics.RatingsSubmitted.WithLabelValues("delete").Inc()
	return nil
}

func (s *ratingService) GetRecipeRatings(ctx context.Context, recipeID string, page domain.PageRequest) (domain.RecipeRatingsResponse, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.RecipeRatingsResponse{}, domain.ErrRecipeNotRateable
	}

	if _, err := s.ratingRepository.GetApprovedRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeRatingsResponse{}, domain.ErrRecipeNotRateable
		}
		return domain.RecipeRatingsResponse{}, err
	}

	ratings, count, err := s.ratingRepository.GetRecipeRatings(ctx, recipeID, page)
	if err != nil {
		return domain.RecipeRatingsResponse{}, err
	}

	average, err := s.ratingRepository.GetAverageScore(ctx, recipeID)
	if err != nil {
		return domain.RecipeRatingsResponse{}, err
	}

	return domain.RecipeRatingsResponse{
		Ratings:       ToRatingResponses(ratings),
		AverageRating: RoundAverage(average),
		TotalRatings:  count,
	}, nil
}

func (s *ratingService) GetMyRatings(ctx context.Context, actor policy.Actor, page domain.PageRequest) ([]domain.RatingResponse, int64, error) {
	if actor.IsAnonymous() {
		return nil, 0, domain.ErrUnauthenticated
	}

	ratings, count, err := s.ratingRepository.GetUserRatings(ctx, actor.UserID, page)
	if err != nil {
		return nil, 0, err
	}
	return ToRatingResponses(ratings), count, nil
}

func (s *ratingService) GetUserRatingForRecipe(ctx context.Context, actor policy.Actor, recipeID string) (domain.UserRatingResponse, error) {
	if actor.IsAnonymous() {
		return domain.UserRatingResponse{}, domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.UserRatingResponse{HasRating: false}, nil
	}

	rating, err := s.ratingRepository.GetUserRating(ctx, actor.UserID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserRatingResponse{HasRating: false}, nil
		}
		return domain.UserRatingResponse{}, err
	}

	res := ToRatingResponse(rating)
	return domain.UserRatingResponse{HasRating: true, Rating: &res}, nil
}

func (s *ratingService) rateableRecipe(ctx context.Context, actor policy.Actor, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotRateable
	}

	recipe, err := s.ratingRepository.GetApprovedRecipe(ctx, recipeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := policy.CanRate(actor, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ownRating hides ratings of other users behind not found.
func (s *ratingService) ownRating(ctx context.Context, actor policy.Actor, ratingID string) (*entities.Rating, error) {
	if _, err := uuid.Parse(ratingID); err != nil {
		return nil, domain.ErrRatingNotFound
	}

	rating, err := s.ratingRepository.GetRatingByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	if actor.IsAnonymous() || rating.UserID.String() != actor.UserID {
		return nil, domain.ErrRatingNotFound
	}
	return rating, nil
}

func (s *ratingService) insert(ctx context.Context, actor policy.Actor, recipe *entities.Recipe, score int, comment string) (*entities.Rating, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rating := &entities.Rating{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		UserID:   userID,
		Score:    score,
		Comment:  strings.TrimSpace(comment),
		RatedAt:  s.now(),
	}
	if err := s.ratingRepository.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyRated
		}
		return nil, err
	}

	metrics.RatingsSubmitted.WithLabelValues("create").Inc()
	return rating, nil
}

func (s *ratingService) overwrite(ctx context.Context, rating *entities.Rating, req domain.UpdateRatingRequest) error {
	rating.Score = req.Score
	rating.Comment = strings.TrimSpace(req.Comment)
	rating.RatedAt = s.now()

	if err := s.ratingRepository.UpdateRating(ctx, rating); err != nil {
		return err
	}

	metrics.RatingsSubmitted.WithLabelValues("update").Inc()
	return nil
}

func (s *ratingService) reload(ctx context.Context, ratingID string) (domain.RatingResponse, error) {
	rating, err := s.ratingRepository.GetRatingByID(ctx, ratingID)
	if err != nil {
		return domain.RatingResponse{}, err
	}
	return ToRatingResponse(rating), nil
}

// RoundAverage rounds a mean score to one decimal place.
func RoundAverage(average float64) float64 {
	return math.Round(average*10) / 10
}

func ToRatingResponse(rating *entities.Rating) domain.RatingResponse {
	res := domain.RatingResponse{
		ID:       rating.ID.String(),
		RecipeID: rating.RecipeID.String(),
		UserID:   rating.UserID.String(),
		Score:    rating.Score,
		Comment:  rating.Comment,
		RatedAt:  rating.RatedAt,
	}
	if rating.Recipe != nil {
		res.RecipeTitle = rating.Recipe.Title
	}
	if rating.User != nil {
		res.UserName = rating.User.FullName()
	}
	return res
}

func ToRatingResponses(ratings []*entities.Rating) []domain.RatingResponse {
	res := make([]domain.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		res = append(res, ToRatingResponse(r))
	}
	return res
}
