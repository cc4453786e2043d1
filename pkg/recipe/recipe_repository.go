package recipe

import (
	"context"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateModeration(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) ([]string, error)
		GetRecipes(ctx context.Context, query domain.RecipeQuery) ([]*entities.Recipe, int64, error)
		GetRecipesByOwner(ctx context.Context, ownerID string, query domain.RecipeQuery) ([]*entities.Recipe, int64, error)
		GetPendingRecipes(ctx context.Context, page domain.PageRequest) ([]*entities.Recipe, int64, error)
		GetRecentRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error)
		GetApprovedRecipesByCategory(ctx context.Context, categoryID string) ([]*entities.Recipe, error)
		GetRecipeStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.RecipeStats, error)
		GetOwnerStatistics(ctx context.Context, ownerID string) (domain.ChefStatistics, error)
		CountRecipes(ctx context.Context, status string) (int64, error)
		CategoryExists(ctx context.Context, id string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertChildren(tx, recipe)
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_number asc") }).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe saves the recipe row and replaces its ingredient and step sets
// in one transaction.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeStep{}).Error; err != nil {
			return err
		}
		return insertChildren(tx, recipe)
	})
}

func (r *recipeRepository) UpdateModeration(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"is_approved":      recipe.IsApproved,
			"is_rejected":      recipe.IsRejected,
			"moderation_notes": recipe.ModerationNotes,
		}).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) ([]string, error) {
	var imageKeys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keys, err := DeleteRecipeTree(tx, []uuid.UUID{id})
		imageKeys = keys
		return err
	})
	if err != nil {
		return nil, err
	}
	return imageKeys, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query domain.RecipeQuery) ([]*entities.Recipe, int64, error) {
	db := r.searchable(ctx, query.Search).Where("recipes.is_approved = ?", true)
	if query.CategoryID != "" {
		db = db.Where("recipes.category_id = ?", query.CategoryID)
	}
	return r.paginate(db, query.PageRequest, sortOrder(query.SortBy))
}

func (r *recipeRepository) GetRecipesByOwner(ctx context.Context, ownerID string, query domain.RecipeQuery) ([]*entities.Recipe, int64, error) {
	db := r.searchable(ctx, query.Search).Where("recipes.user_id = ?", ownerID)
	db = withStatus(db, query.Status)
	if query.CategoryID != "" {
		db = db.Where("recipes.category_id = ?", query.CategoryID)
	}
	return r.paginate(db, query.PageRequest, sortOrder(query.SortBy))
}

func (r *recipeRepository) GetPendingRecipes(ctx context.Context, page domain.PageRequest) ([]*entities.Recipe, int64, error) {
	db := r.searchable(ctx, "")
	db = withStatus(db, domain.StatusFilterPending)
	return r.paginate(db, page, "recipes.created_at asc")
}

func (r *recipeRepository) GetRecentRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetApprovedRecipesByCategory(ctx context.Context, categoryID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Where("category_id = ? AND is_approved = ?", categoryID, true).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

type ratingAggregate struct {
	RecipeID uuid.UUID
	Average  float64
	Total    int64
}

type favoriteAggregate struct {
	RecipeID uuid.UUID
	Total    int64
}

// GetRecipeStats computes rating and favorite aggregates from the current rows.
// The average is the plain mean of all scores; recipes without ratings are
// reported with an average of 0.
func (r *recipeRepository) GetRecipeStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.RecipeStats, error) {
	stats := make(map[uuid.UUID]domain.RecipeStats, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}

	var ratings []ratingAggregate
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Select("recipe_id, CAST(AVG(score) AS FLOAT) AS average, COUNT(*) AS total").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&ratings).Error; err != nil {
		return nil, err
	}

	var favorites []favoriteAggregate
	if err := r.db.WithContext(ctx).Model(&entities.UserFavorite{}).
		Select("recipe_id, COUNT(*) AS total").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&favorites).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		stats[id] = domain.RecipeStats{}
	}
	for _, agg := range ratings {
		s := stats[agg.RecipeID]
		s.AverageRating = agg.Average
		s.TotalRatings = agg.Total
		stats[agg.RecipeID] = s
	}
	for _, agg := range favorites {
		s := stats[agg.RecipeID]
		s.FavoriteCount = agg.Total
		stats[agg.RecipeID] = s
	}
	return stats, nil
}

func (r *recipeRepository) GetOwnerStatistics(ctx context.Context, ownerID string) (domain.ChefStatistics, error) {
	var stats domain.ChefStatistics
	db := r.db.WithContext(ctx)

	counts := []struct {
		status string
		target *int64
	}{
		{domain.StatusFilterAll, &stats.TotalRecipes},
		{domain.StatusFilterApproved, &stats.Approved},
		{domain.StatusFilterPending, &stats.Pending},
		{domain.StatusFilterRejected, &stats.Rejected},
	}
	for _, c := range counts {
		query := withStatus(db.Model(&entities.Recipe{}).Where("recipes.user_id = ?", ownerID), c.status)
		if err := query.Count(c.target).Error; err != nil {
			return domain.ChefStatistics{}, err
		}
	}

	var received struct {
		Average float64
		Total   int64
	}
	if err := db.Model(&entities.Rating{}).
		Select("COALESCE(CAST(AVG(ratings.score) AS FLOAT), 0) AS average, COUNT(*) AS total").
		Joins("JOIN recipes ON recipes.id = ratings.recipe_id").
		Where("recipes.user_id = ?", ownerID).
		Scan(&received).Error; err != nil {
		return domain.ChefStatistics{}, err
	}
	stats.TotalRatingsReceived = received.Total
	stats.OverallAverageRating = received.Average

	if err := db.Model(&entities.UserFavorite{}).
		Joins("JOIN recipes ON recipes.id = user_favorites.recipe_id").
		Where("recipes.user_id = ?", ownerID).
		Count(&stats.TotalFavorites).Error; err != nil {
		return domain.ChefStatistics{}, err
	}

	return stats, nil
}

func (r *recipeRepository) CountRecipes(ctx context.Context, status string) (int64, error) {
	var count int64
	query := withStatus(r.db.WithContext(ctx).Model(&entities.Recipe{}), status)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// searchable joins owner and category so free text search can match the
// category name and the chef's first and last name.
func (r *recipeRepository) searchable(ctx context.Context, search string) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Joins("JOIN users ON users.id = recipes.user_id").
		Joins("JOIN categories ON categories.id = recipes.category_id")

	search = strings.TrimSpace(search)
	if search != "" {
		like := utils.ContainsPattern(search)
		db = db.Where(
			"(LOWER(recipes.title) LIKE ? ESCAPE '\\' OR LOWER(recipes.description) LIKE ? ESCAPE '\\' OR LOWER(categories.name) LIKE ? ESCAPE '\\' OR LOWER(users.first_name) LIKE ? ESCAPE '\\' OR LOWER(users.last_name) LIKE ? ESCAPE '\\')",
			like, like, like, like, like,
		)
	}
	return db
}

func (r *recipeRepository) paginate(db *gorm.DB, page domain.PageRequest, order string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	db = db.Session(&gorm.Session{})
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Select("recipes.*").
		Preload("User").
		Preload("Category").
		Order(order).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func withStatus(db *gorm.DB, status string) *gorm.DB {
	switch status {
	case domain.StatusFilterApproved:
		return db.Where("recipes.is_approved = ?", true)
	case domain.StatusFilterPending:
		return db.Where("recipes.is_approved = ? AND recipes.is_rejected = ?", false, false)
	case domain.StatusFilterRejected:
		return db.Where("recipes.is_rejected = ?", true)
	default:
		return db
	}
}

func sortOrder(sortBy string) string {
	switch sortBy {
	case domain.SortOldest:
		return "recipes.created_at asc"
	case domain.SortTitle:
		return "recipes.title asc"
	case domain.SortRating:
		return "(SELECT COALESCE(AVG(ratings.score), 0) FROM ratings WHERE ratings.recipe_id = recipes.id) desc, recipes.created_at desc"
	default:
		return "recipes.created_at desc"
	}
}

func insertChildren(tx *gorm.DB, recipe *entities.Recipe) error {
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].ID = uuid.Nil
		recipe.Ingredients[i].RecipeID = recipe.ID
	}
	for i := range recipe.Steps {
		recipe.Steps[i].ID = uuid.Nil
		recipe.Steps[i].RecipeID = recipe.ID
	}

	if len(recipe.Ingredients) > 0 {
		if err := tx.Create(&recipe.Ingredients).Error; err != nil {
			return err
		}
	}
	if len(recipe.Steps) > 0 {
		if err := tx.Create(&recipe.Steps).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteRecipeTree removes the given recipes together with their ingredients,
// steps, ratings and favorites. It must run inside a transaction. The image
// keys referenced by the deleted rows are returned so the caller can drop them
// from the image store after commit.
func DeleteRecipeTree(tx *gorm.DB, recipeIDs []uuid.UUID) ([]string, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	var imageKeys []string
	if err := tx.Model(&entities.Recipe{}).
		Where("id IN ? AND main_image_key <> ''", recipeIDs).
		Pluck("main_image_key", &imageKeys).Error; err != nil {
		return nil, err
	}
	var stepKeys []string
	if err := tx.Model(&entities.RecipeStep{}).
		Where("recipe_id IN ? AND image_key <> ''", recipeIDs).
		Pluck("image_key", &stepKeys).Error; err != nil {
		return nil, err
	}
	imageKeys = append(imageKeys, stepKeys...)

	children := []interface{}{
		&entities.Ingredient{},
		&entities.RecipeStep{},
		&entities.Rating{},
		&entities.UserFavorite{},
	}
	for _, model := range children {
		if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(model).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Where("id IN ?", recipeIDs).Delete(&entities.Recipe{}).Error; err != nil {
		return nil, err
	}
	return imageKeys, nil
}
