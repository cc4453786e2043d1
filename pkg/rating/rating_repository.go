package rating

import (
	"context"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"

	"gorm.io/gorm"
)

type (
	RatingRepository interface {
		CreateRating(ctx context.Context, rating *entities.Rating) error
		UpdateRating(ctx context.Context, rating *entities.Rating) error
		DeleteRating(ctx context.Context, rating *entities.Rating) error
		GetRatingByID(ctx context.Context, id string) (*entities.Rating, error)
		GetUserRating(ctx context.Context, userID string, recipeID string) (*entities.Rating, error)
		GetRecipeRatings(ctx context.Context, recipeID string, page domain.PageRequest) ([]*entities.Rating, int64, error)
		GetUserRatings(ctx context.Context, userID string, page domain.PageRequest) ([]*entities.Rating, int64, error)
		GetAverageScore(ctx context.Context, recipeID string) (float64, error)
		GetApprovedRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error)
		CountRatings(ctx context.Context) (int64, error)
		CountRatingsByUser(ctx context.Context, userID string) (int64, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) CreateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Omit("User", "Recipe").Create(rating).Error
}

func (r *ratingRepository) UpdateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Model(&entities.Rating{}).
		Where("id = ?", rating.ID).
		Updates(map[string]interface{}{
			"score":    rating.Score,
			"comment":  rating.Comment,
			"rated_at": rating.RatedAt,
		}).Error
}

func (r *ratingRepository) DeleteRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Where("id = ?", rating.ID).Delete(&entities.Rating{}).Error
}

func (r *ratingRepository) GetRatingByID(ctx context.Context, id string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Recipe").
		Where("id = ?", id).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetUserRating(ctx context.Context, userID string, recipeID string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Recipe").
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetRecipeRatings(ctx context.Context, recipeID string, page domain.PageRequest) ([]*entities.Rating, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Rating{}).Where("recipe_id = ?", recipeID)
	return r.paginate(query, page)
}

func (r *ratingRepository) GetUserRatings(ctx context.Context, userID string, page domain.PageRequest) ([]*entities.Rating, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Rating{}).Where("user_id = ?", userID)
	return r.paginate(query, page)
}

func (r *ratingRepository) paginate(query *gorm.DB, page domain.PageRequest) ([]*entities.Rating, int64, error) {
	var ratings []*entities.Rating
	var count int64

	query = query.Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Recipe").
		Order("rated_at desc").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&ratings).Error; err != nil {
		return nil, 0, err
	}

	return ratings, count, nil
}

func (r *ratingRepository) GetAverageScore(ctx context.Context, recipeID string) (float64, error) {
	var average float64
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Select("COALESCE(CAST(AVG(score) AS FLOAT), 0)").
		Where("recipe_id = ?", recipeID).
		Scan(&average).Error; err != nil {
		return 0, err
	}
	return average, nil
}

func (r *ratingRepository) GetApprovedRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_approved = ?", recipeID, true).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *ratingRepository) CountRatings(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ratingRepository) CountRatingsByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
