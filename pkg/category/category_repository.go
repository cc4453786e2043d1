package category

import (
	"context"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		CreateCategory(ctx context.Context, category *entities.Category) error
		UpdateCategory(ctx context.Context, category *entities.Category) error
		DeleteCategory(ctx context.Context, category *entities.Category) error
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryCounts(ctx context.Context) (map[string]domain.CategoryCounts, error)
		NameExists(ctx context.Context, name string, excludeID string) (bool, error)
		CountRecipes(ctx context.Context, categoryID string) (int64, error)
		CountCategories(ctx context.Context) (int64, error)
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Where("id = ?", category.ID).Delete(&entities.Category{}).Error
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryCounts(ctx context.Context) (map[string]domain.CategoryCounts, error) {
	var rows []struct {
		CategoryID string
		Total      int64
		Approved   int64
		Pending    int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Select(`category_id,
			COUNT(*) AS total,
			SUM(CASE WHEN is_approved THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN NOT is_approved AND NOT is_rejected THEN 1 ELSE 0 END) AS pending`).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]domain.CategoryCounts, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = domain.CategoryCounts{
			CategoryID: row.CategoryID,
			Total:      row.Total,
			Approved:   row.Approved,
			Pending:    row.Pending,
		}
	}
	return counts, nil
}

func (r *categoryRepository) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) CountRecipes(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
