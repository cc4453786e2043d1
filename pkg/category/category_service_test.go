package category

import (
	"context"
	"testing"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/testutil"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(t *testing.T) (*gorm.DB, CategoryService) {
	db := testutil.NewDB(t)
	return db, NewCategoryService(NewCategoryRepository(db), recipe.NewRecipeRepository(db))
}

func TestGetCategories_Counts(t *testing.T) {
	db, service := newCategoryService(t)
	ctx := context.Background()

	chef := testutil.CreateUser(t, db, domain.RoleChef)
	desserts := testutil.CreateCategory(t, db, "Desserts")
	testutil.CreateCategory(t, db, "Appetizers")
	testutil.CreateRecipe(t, db, chef, desserts, "Approved", true)
	testutil.CreateRecipe(t, db, chef, desserts, "Pending", false)
	rejected := testutil.CreateRecipe(t, db, chef, desserts, "Rejected", false)
	require.NoError(t, db.Model(rejected).Update("is_rejected", true).Error)

	categories, err := service.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "Appetizers", categories[0].Name)
	assert.Equal(t, int64(0), categories[0].RecipeCount)

	assert.Equal(t, "Desserts", categories[1].Name)
	assert.Equal(t, int64(3), categories[1].RecipeCount)
	assert.Equal(t, int64(1), categories[1].ApprovedRecipeCount)
	assert.Equal(t, int64(1), categories[1].PendingRecipeCount)

	detail, err := service.GetCategory(ctx, desserts.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Recipes, 1)
	assert.Equal(t, "Approved", detail.Recipes[0].Title)

	_, err = service.GetCategory(ctx, "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	_, service := newCategoryService(t)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, domain.CategoryRequest{Name: " Soups ", Description: "Warm bowls"})
	require.NoError(t, err)
	assert.Equal(t, "Soups", created.Name)

	_, err = service.CreateCategory(ctx, domain.CategoryRequest{Name: "SOUPS"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "A category with this name already exists")

	_, err = service.CreateCategory(ctx, domain.CategoryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateCategory(t *testing.T) {
	db, service := newCategoryService(t)
	ctx := context.Background()

	soups := testutil.CreateCategory(t, db, "Soups")
	testutil.CreateCategory(t, db, "Salads")

	// keeping its own name is not a conflict
	updated, err := service.UpdateCategory(ctx, soups.ID.String(), domain.CategoryRequest{Name: "soups", Description: "Hot"})
	require.NoError(t, err)
	assert.Equal(t, "soups", updated.Name)
	assert.Equal(t, "Hot", updated.Description)

	_, err = service.UpdateCategory(ctx, soups.ID.String(), domain.CategoryRequest{Name: "Salads"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteCategory(t *testing.T) {
	db, service := newCategoryService(t)
	ctx := context.Background()

	chef := testutil.CreateUser(t, db, domain.RoleChef)
	used := testutil.CreateCategory(t, db, "Used")
	empty := testutil.CreateCategory(t, db, "Empty")
	testutil.CreateRecipe(t, db, chef, used, "Pending one", false)
	testutil.CreateRecipe(t, db, chef, used, "Approved one", true)

	err := service.DeleteCategory(ctx, used.ID.String())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Cannot delete category with 2 recipe(s). Move or delete the recipes first.")

	require.NoError(t, service.DeleteCategory(ctx, empty.ID.String()))
	assert.Equal(t, int64(0), testutil.Count(t, db, &entities.Category{}, "id = ?", empty.ID))

	assert.ErrorIs(t, service.DeleteCategory(ctx, empty.ID.String()), domain.ErrNotFound)
}

type staleNames struct {
	CategoryRepository
}

func (staleNames) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	return false, nil
}

func TestCreateCategory_ConcurrentDuplicate(t *testing.T) {
	db, _ := newCategoryService(t)
	ctx := context.Background()
	testutil.CreateCategory(t, db, "Soups")

	// the unique index ignores case, so a racing "soups" still conflicts
	racing := NewCategoryService(staleNames{NewCategoryRepository(db)}, recipe.NewRecipeRepository(db))
	_, err := racing.CreateCategory(ctx, domain.CategoryRequest{Name: "soups"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "A category with this name already exists")

	salads := testutil.CreateCategory(t, db, "Salads")
	_, err = racing.UpdateCategory(ctx, salads.ID.String(), domain.CategoryRequest{Name: "SOUPS"})
	assert.ErrorIs(t, err, domain.ErrCategoryNameTaken)
	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Category{}, "LOWER(name) = ?", "soups"))
}
