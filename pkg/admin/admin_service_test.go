package admin

import (
	"context"
	"testing"
	"time"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/testutil"
	"recipe-sharing-platform/internal/utils/storage"
	"recipe-sharing-platform/pkg/category"
	"recipe-sharing-platform/pkg/favorite"
	"recipe-sharing-platform/pkg/rating"
	"recipe-sharing-platform/pkg/recipe"
	"recipe-sharing-platform/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type adminFixture struct {
	db       *gorm.DB
	store    storage.ImageStore
	service  AdminService
	admin    *entities.User
	chef     *entities.User
	user     *entities.User
	category *entities.Category
}

func newAdminFixture(t *testing.T) adminFixture {
	db := testutil.NewDB(t)
	store := storage.NewDatabaseStore(db)

	return adminFixture{
		db:    db,
		store: store,
		service: NewAdminService(
			NewAdminRepository(db),
			user.NewUserRepository(db),
			recipe.NewRecipeRepository(db),
			category.NewCategoryRepository(db),
			rating.NewRatingRepository(db),
			favorite.NewFavoriteRepository(db),
			store,
		),
		admin:    testutil.CreateUser(t, db, domain.RoleAdmin),
		chef:     testutil.CreateUser(t, db, domain.RoleChef),
		user:     testutil.CreateUser(t, db, domain.RoleUser),
		category: testutil.CreateCategory(t, db, "Main Courses"),
	}
}

func TestGetDashboard(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	approved := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Roast", true)
	testutil.CreateRecipe(t, f.db, f.chef, f.category, "Stew", false)
	rejected := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Curry", false)
	require.NoError(t, f.db.Model(rejected).Update("is_rejected", true).Error)
	require.NoError(t, f.db.Model(rejected).Update("created_at", time.Now().Add(time.Hour)).Error)

	require.NoError(t, f.db.Create(&entities.Rating{RecipeID: approved.ID, UserID: f.user.ID, Score: 5, RatedAt: time.Now()}).Error)
	require.NoError(t, f.db.Create(&entities.UserFavorite{RecipeID: approved.ID, UserID: f.user.ID, DateAdded: time.Now()}).Error)

	res, err := f.service.GetDashboard(ctx, testutil.Actor(f.admin))
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.TotalRecipes)
	assert.Equal(t, int64(1), res.PendingRecipes)
	assert.Equal(t, int64(1), res.ApprovedRecipes)
	assert.Equal(t, int64(1), res.RejectedRecipes)
	assert.Equal(t, int64(3), res.TotalUsers)
	assert.Equal(t, int64(1), res.TotalChefs)
	assert.Equal(t, int64(1), res.TotalCategories)
	assert.Equal(t, int64(1), res.TotalRatings)
	assert.Equal(t, int64(1), res.TotalFavorites)

	require.Len(t, res.RecentActivity, 3)
	latest := res.RecentActivity[0]
	assert.Equal(t, "Recipe Submitted", latest.Type)
	assert.Equal(t, f.chef.FullName()+` submitted "Curry"`, latest.Description)
	assert.Equal(t, entities.StatusRejected, latest.Status)
	assert.Equal(t, rejected.ID.String(), latest.RecipeID)

	_, err = f.service.GetDashboard(ctx, testutil.Actor(f.chef))
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestGetUsers(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.admin)

	testutil.CreateRecipe(t, f.db, f.chef, f.category, "Roast", true)
	testutil.CreateRecipe(t, f.db, f.chef, f.category, "Stew", false)

	page := domain.PageRequest{Page: 1, PageSize: 10}

	all, total, err := f.service.GetUsers(ctx, actor, domain.UserQuery{PageRequest: page, Role: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	chefs, total, err := f.service.GetUsers(ctx, actor, domain.UserQuery{PageRequest: page, Role: domain.RoleChef})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, chefs, 1)
	assert.Equal(t, f.chef.ID.String(), chefs[0].ID)
	assert.Equal(t, int64(2), chefs[0].RecipeCount)

	found, total, err := f.service.GetUsers(ctx, actor, domain.UserQuery{PageRequest: page, Search: f.user.Username})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, f.user.Email, found[0].Email)
	assert.Equal(t, int64(0), found[0].RecipeCount)

	_, total, err = f.service.GetUsers(ctx, actor, domain.UserQuery{PageRequest: page, Search: "_"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestUpdateUserRole(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.admin)

	require.NoError(t, f.service.UpdateUserRole(ctx, actor, f.user.ID.String(), domain.UpdateRoleRequest{Role: domain.RoleChef}))
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.User{}, "id = ? AND role = ?", f.user.ID, domain.RoleChef))

	err := f.service.UpdateUserRole(ctx, actor, f.user.ID.String(), domain.UpdateRoleRequest{Role: "Owner"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = f.service.UpdateUserRole(ctx, actor, f.admin.ID.String(), domain.UpdateRoleRequest{Role: domain.RoleUser})
	assert.EqualError(t, err, "You cannot change your own role.")

	err = f.service.UpdateUserRole(ctx, actor, "00000000-0000-0000-0000-000000000001", domain.UpdateRoleRequest{Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleLockout(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.admin)

	disabled, err := f.service.ToggleLockout(ctx, actor, f.user.ID.String())
	require.NoError(t, err)
	assert.True(t, disabled)

	disabled, err = f.service.ToggleLockout(ctx, actor, f.user.ID.String())
	require.NoError(t, err)
	assert.False(t, disabled)

	_, err = f.service.ToggleLockout(ctx, actor, f.admin.ID.String())
	assert.EqualError(t, err, "You cannot disable your own account.")
}

func TestDeleteUser_Cascades(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owned := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Roast", true)
	other := testutil.CreateRecipe(t, f.db, testutil.CreateUser(t, f.db, domain.RoleChef), f.category, "Soup", true)

	key := storage.NewObjectKey("recipes")
	require.NoError(t, f.store.Put(ctx, key, "image/png", testutil.PNG))
	require.NoError(t, f.db.Model(owned).Update("main_image_key", key).Error)

	// another user's rating and favorite on the chef's recipe go with it
	require.NoError(t, f.db.Create(&entities.Rating{RecipeID: owned.ID, UserID: f.user.ID, Score: 4, RatedAt: time.Now()}).Error)
	require.NoError(t, f.db.Create(&entities.UserFavorite{RecipeID: owned.ID, UserID: f.user.ID, DateAdded: time.Now()}).Error)
	// and so does what the chef left on someone else's recipe
	require.NoError(t, f.db.Create(&entities.Rating{RecipeID: other.ID, UserID: f.chef.ID, Score: 3, RatedAt: time.Now()}).Error)
	require.NoError(t, f.db.Create(&entities.UserFavorite{RecipeID: other.ID, UserID: f.chef.ID, DateAdded: time.Now()}).Error)

	require.NoError(t, f.service.DeleteUser(ctx, testutil.Actor(f.admin), f.chef.ID.String()))

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.User{}, "id = ?", f.chef.ID))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, "user_id = ?", f.chef.ID))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Ingredient{}, "recipe_id = ?", owned.ID))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.RecipeStep{}, "recipe_id = ?", owned.ID))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Rating{}, "1 = 1"))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.UserFavorite{}, "1 = 1"))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.ImageBlob{}, "object_key = ?", key))
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Recipe{}, "id = ?", other.ID))

	err := f.service.DeleteUser(ctx, testutil.Actor(f.admin), f.admin.ID.String())
	assert.EqualError(t, err, "You cannot delete your own account.")
}

func TestAdminDeleteRecipe(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	pending := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Stew", false)

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, testutil.Actor(f.user), pending.ID.String()), domain.ErrAuthorization)
	require.NoError(t, f.service.DeleteRecipe(ctx, testutil.Actor(f.admin), pending.ID.String()))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, "id = ?", pending.ID))

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, testutil.Actor(f.admin), pending.ID.String()), domain.ErrNotFound)
}
