package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CategoryService interface {
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		GetCategory(ctx context.Context, categoryID string) (domain.CategoryDetailResponse, error)
		CreateCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error)
		UpdateCategory(ctx context.Context, categoryID string, req domain.CategoryRequest) (domain.CategoryResponse, error)
		DeleteCategory(ctx context.Context, categoryID string) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository, recipeRepository recipe.RecipeRepository) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		recipeRepository:   recipeRepository,
	}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepository.GetCategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, ToCategoryResponse(c, counts[c.ID.String()]))
	}
	return res, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (domain.CategoryDetailResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return domain.CategoryDetailResponse{}, err
	}

	counts, err := s.categoryRepository.GetCategoryCounts(ctx)
	if err != nil {
		return domain.CategoryDetailResponse{}, err
	}

	recipes, err := s.recipeRepository.GetApprovedRecipesByCategory(ctx, categoryID)
	if err != nil {
		return domain.CategoryDetailResponse{}, err
	}

	stats, err := s.recipeRepository.GetRecipeStats(ctx, recipe.RecipeIDs(recipes))
	if err != nil {
		return domain.CategoryDetailResponse{}, err
	}

	return domain.CategoryDetailResponse{
		CategoryResponse: ToCategoryResponse(category, counts[category.ID.String()]),
		Recipes:          recipe.ToRecipeResponses(recipes, stats),
	}, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.CategoryResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureUniqueName(ctx, name, ""); err != nil {
		return domain.CategoryResponse{}, err
	}

	category := &entities.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, nameConflict(err)
	}

	return ToCategoryResponse(category, domain.CategoryCounts{}), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return domain.CategoryResponse{}, err
	}

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureUniqueName(ctx, name, categoryID); err != nil {
		return domain.CategoryResponse{}, err
	}

	category.Name = name
	category.Description = strings.TrimSpace(req.Description)
	if err := s.categoryRepository.UpdateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, nameConflict(err)
	}

	counts, err := s.categoryRepository.GetCategoryCounts(ctx)
	if err != nil {
		return domain.CategoryResponse{}, err
	}
	return ToCategoryResponse(category, counts[category.ID.String()]), nil
}

// DeleteCategory refuses to delete a category that any recipe still uses,
// whatever the recipe's moderation state.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	count, err := s.categoryRepository.CountRecipes(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse(count)
	}

	return s.categoryRepository.DeleteCategory(ctx, category)
}

func ErrCategoryInUse(count int64) error {
	return domain.NewError(domain.ErrConflict,
		fmt.Sprintf("Cannot delete category with %d recipe(s). Move or delete the recipes first.", count))
}

func (s *categoryService) findCategory(ctx context.Context, categoryID string) (*entities.Category, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	category, err := s.categoryRepository.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ensureUniqueName(ctx context.Context, name string, excludeID string) error {
	taken, err := s.categoryRepository.NameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrCategoryNameTaken
	}
	return nil
}

// nameConflict reports a write that lost a race on the unique name index as
// the same conflict the pre-check returns.
func nameConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrCategoryNameTaken
	}
	return err
}

func ToCategoryResponse(category *entities.Category, counts domain.CategoryCounts) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:                  category.ID.String(),
		Name:                category.Name,
		Description:         category.Description,
		RecipeCount:         counts.Total,
		ApprovedRecipeCount: counts.Approved,
		PendingRecipeCount:  counts.Pending,
		CreatedAt:           category.CreatedAt,
	}
}
