package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/testutil"
	"recipe-sharing-platform/internal/utils/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recipeFixture struct {
	db       *gorm.DB
	service  RecipeService
	chef     *entities.User
	category *entities.Category
}

func newRecipeFixture(t *testing.T) recipeFixture {
	db := testutil.NewDB(t)
	return recipeFixture{
		db:       db,
		service:  NewRecipeService(NewRecipeRepository(db), storage.NewDatabaseStore(db)),
		chef:     testutil.CreateUser(t, db, domain.RoleChef),
		category: testutil.CreateCategory(t, db, "Desserts"),
	}
}

func recipeRequest(categoryID string) domain.RecipeRequest {
	return domain.RecipeRequest{
		Title:           "Lemon Tart",
		Description:     "Sharp and sweet",
		PrepTimeMinutes: 20,
		CookTimeMinutes: 35,
		Servings:        8,
		CategoryID:      categoryID,
		Ingredients: []domain.IngredientRequest{
			{Name: "Lemons", Quantity: "4"},
			{Name: "Sugar", Quantity: "200", Unit: "g"},
		},
		Steps: []domain.StepRequest{
			{Description: "Make the pastry"},
			{Description: "Bake"},
		},
	}
}

func TestCreateRecipe_DropsBlankRowsAndNumbersSteps(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	req := recipeRequest(f.category.ID.String())
	req.Ingredients = append(req.Ingredients, domain.IngredientRequest{Name: "   "})
	req.Steps = []domain.StepRequest{
		{Description: "Make the pastry"},
		{Description: "  "},
		{Description: "Bake"},
	}

	res, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), domain.CreateRecipeRequest{RecipeRequest: req})
	require.NoError(t, err)

	detail, err := f.service.GetRecipe(ctx, testutil.Actor(f.chef), res.RecipeID)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusPending, detail.Status)
	assert.Nil(t, detail.ModerationNotes)
	require.Len(t, detail.Ingredients, 2)
	assert.Equal(t, "Lemons", detail.Ingredients[0].Name)
	require.Len(t, detail.Steps, 2)
	assert.Equal(t, 1, detail.Steps[0].StepNumber)
	assert.Equal(t, "Make the pastry", detail.Steps[0].Description)
	assert.Equal(t, 2, detail.Steps[1].StepNumber)
	assert.Equal(t, "Bake", detail.Steps[1].Description)
}

func TestCreateRecipe_Rejections(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, domain.RoleUser)

	t.Run("non chef", func(t *testing.T) {
		req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
		_, err := f.service.CreateRecipe(ctx, testutil.Actor(user), req)
		assert.ErrorIs(t, err, domain.ErrAuthorization)
	})

	t.Run("no ingredients", func(t *testing.T) {
		req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
		req.Ingredients = []domain.IngredientRequest{{Name: ""}}
		_, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)
		assert.ErrorIs(t, err, domain.ErrIngredientsRequired)
	})

	t.Run("no steps", func(t *testing.T) {
		req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
		req.Steps = nil
		_, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)
		assert.ErrorIs(t, err, domain.ErrStepsRequired)
	})

	t.Run("unknown category", func(t *testing.T) {
		req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest("00000000-0000-0000-0000-000000000001")}
		_, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)
		assert.ErrorIs(t, err, domain.ErrRecipeCategoryNotFound)
	})

	t.Run("servings out of range", func(t *testing.T) {
		req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
		req.Servings = 51
		_, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("bad step image", func(t *testing.T) {
		req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
		img := testutil.Image("step.gif")
		req.Steps[1].Image = img
		_, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)

		var fieldErrs domain.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "Step 2 image must be a JPG, PNG, or WebP file. Found: .gif", fieldErrs[0].Message)
	})

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, "1 = 1"))
}

func TestCreateRecipe_StoresImages(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	req.MainImage = testutil.Image("tart.png")
	req.Steps[0].Image = testutil.Image("pastry.png")

	res, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)
	require.NoError(t, err)

	detail, err := f.service.GetRecipe(ctx, testutil.Actor(f.chef), res.RecipeID)
	require.NoError(t, err)
	assert.Contains(t, detail.ImageURL, "/image/GetRecipeImage/"+res.RecipeID)
	assert.Contains(t, detail.Steps[0].ImageURL, "/image/GetStepImage/"+detail.Steps[0].ID)
	assert.Empty(t, detail.Steps[1].ImageURL)
	assert.Equal(t, int64(2), testutil.Count(t, f.db, &entities.ImageBlob{}, "1 = 1"))
}

func TestUpdateRecipe_ResetsModeration(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	recipe := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Brownies", true)
	notes := "Looks great"
	require.NoError(t, f.db.Model(recipe).Update("moderation_notes", notes).Error)

	fan := testutil.CreateUser(t, f.db, domain.RoleUser)
	require.NoError(t, f.db.Create(&entities.UserFavorite{UserID: fan.ID, RecipeID: recipe.ID, DateAdded: time.Now()}).Error)

	req := domain.UpdateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	require.NoError(t, f.service.UpdateRecipe(ctx, testutil.Actor(f.chef), recipe.ID.String(), req))

	var saved entities.Recipe
	require.NoError(t, f.db.First(&saved, "id = ?", recipe.ID).Error)
	assert.False(t, saved.IsApproved)
	assert.False(t, saved.IsRejected)
	assert.Nil(t, saved.ModerationNotes)
	assert.Equal(t, "Lemon Tart", saved.Title)

	assert.Equal(t, int64(2), testutil.Count(t, f.db, &entities.Ingredient{}, "recipe_id = ?", recipe.ID))
	assert.Equal(t, int64(2), testutil.Count(t, f.db, &entities.RecipeStep{}, "recipe_id = ?", recipe.ID))
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.UserFavorite{}, "user_id = ? AND recipe_id = ?", fan.ID, recipe.ID))

	// the edited recipe leaves the public listing
	recipes, total, err := f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: domain.PageRequest{Page: 1, PageSize: 12}})
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Equal(t, int64(0), total)
}

// failStepInserts makes every insert into recipe_steps fail, so the recipe
// write breaks after its row and ingredients are already staged.
func failStepInserts(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_step_insert", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "recipe_steps" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))
}

func TestCreateRecipe_RollsBackOnFailure(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	failStepInserts(t, f.db)

	req := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	req.MainImage = testutil.Image("tart.png")
	_, err := f.service.CreateRecipe(ctx, testutil.Actor(f.chef), req)
	require.Error(t, err)

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, "1 = 1"))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Ingredient{}, "1 = 1"))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.RecipeStep{}, "1 = 1"))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.ImageBlob{}, "1 = 1"))
}

func TestUpdateRecipe_RollsBackOnFailure(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	recipe := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Brownies", true)
	failStepInserts(t, f.db)

	req := domain.UpdateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	err := f.service.UpdateRecipe(ctx, testutil.Actor(f.chef), recipe.ID.String(), req)
	require.Error(t, err)

	var saved entities.Recipe
	require.NoError(t, f.db.First(&saved, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Brownies", saved.Title)
	assert.True(t, saved.IsApproved)
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Ingredient{}, "recipe_id = ?", recipe.ID))
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.RecipeStep{}, "recipe_id = ?", recipe.ID))
}

func TestUpdateRecipe_Images(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.chef)

	create := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	create.MainImage = testutil.Image("tart.png")
	create.Steps[1].Image = testutil.Image("bake.png")
	res, err := f.service.CreateRecipe(ctx, actor, create)
	require.NoError(t, err)

	// no uploads: step 2 keeps its image
	update := domain.UpdateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	require.NoError(t, f.service.UpdateRecipe(ctx, actor, res.RecipeID, update))

	detail, err := f.service.GetRecipe(ctx, actor, res.RecipeID)
	require.NoError(t, err)
	assert.NotEmpty(t, detail.ImageURL)
	assert.NotEmpty(t, detail.Steps[1].ImageURL)
	assert.Equal(t, int64(2), testutil.Count(t, f.db, &entities.ImageBlob{}, "1 = 1"))

	// removing both drops the stored blobs
	update.RemoveMainImage = true
	update.Steps[1].RemoveImage = true
	require.NoError(t, f.service.UpdateRecipe(ctx, actor, res.RecipeID, update))

	detail, err = f.service.GetRecipe(ctx, actor, res.RecipeID)
	require.NoError(t, err)
	assert.Empty(t, detail.ImageURL)
	assert.Empty(t, detail.Steps[1].ImageURL)
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.ImageBlob{}, "1 = 1"))
}

func TestUpdateRecipe_NotOwner(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	recipe := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Brownies", true)
	otherChef := testutil.CreateUser(t, f.db, domain.RoleChef)
	admin := testutil.CreateUser(t, f.db, domain.RoleAdmin)
	req := domain.UpdateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}

	err := f.service.UpdateRecipe(ctx, testutil.Actor(otherChef), recipe.ID.String(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// admins moderate and delete but never edit
	err = f.service.UpdateRecipe(ctx, testutil.Actor(admin), recipe.ID.String(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.service.UpdateRecipe(ctx, testutil.Actor(f.chef), "not-a-uuid", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetRecipe_Visibility(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	pending := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Secret", false)
	approved := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Public", true)
	user := testutil.CreateUser(t, f.db, domain.RoleUser)
	admin := testutil.CreateUser(t, f.db, domain.RoleAdmin)

	_, err := f.service.GetRecipe(ctx, testutil.Anonymous(), pending.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.GetRecipe(ctx, testutil.Actor(user), pending.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.GetRecipe(ctx, testutil.Actor(f.chef), pending.ID.String())
	assert.NoError(t, err)

	_, err = f.service.GetRecipe(ctx, testutil.Actor(admin), pending.ID.String())
	assert.NoError(t, err)

	detail, err := f.service.GetRecipe(ctx, testutil.Anonymous(), approved.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Test "+f.chef.LastName, detail.ChefName)
	assert.Equal(t, "Desserts", detail.CategoryName)
}

func TestGetRecipe_AverageIsMean(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	recipe := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Pavlova", true)
	for _, score := range []int{4, 4, 5} {
		rater := testutil.CreateUser(t, f.db, domain.RoleUser)
		require.NoError(t, f.db.Create(&entities.Rating{RecipeID: recipe.ID, UserID: rater.ID, Score: score, RatedAt: time.Now()}).Error)
	}

	detail, err := f.service.GetRecipe(ctx, testutil.Anonymous(), recipe.ID.String())
	require.NoError(t, err)
	assert.InDelta(t, 13.0/3.0, detail.AverageRating, 1e-9)
	assert.Equal(t, int64(3), detail.TotalRatings)

	recipes, _, err := f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: domain.PageRequest{Page: 1, PageSize: 12}})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.InDelta(t, 13.0/3.0, recipes[0].AverageRating, 1e-9)

	res, err := f.service.GetMyRecipes(ctx, testutil.Actor(f.chef), domain.RecipeQuery{PageRequest: domain.PageRequest{Page: 1, PageSize: 12}})
	require.NoError(t, err)
	assert.InDelta(t, 13.0/3.0, res.Statistics.OverallAverageRating, 1e-9)
}

func TestDeleteRecipe_RemovesChildren(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.chef)

	create := domain.CreateRecipeRequest{RecipeRequest: recipeRequest(f.category.ID.String())}
	create.MainImage = testutil.Image("tart.png")
	res, err := f.service.CreateRecipe(ctx, actor, create)
	require.NoError(t, err)

	var recipe entities.Recipe
	require.NoError(t, f.db.First(&recipe, "id = ?", res.RecipeID).Error)
	require.NoError(t, f.db.Model(&recipe).Update("is_approved", true).Error)

	rater := testutil.CreateUser(t, f.db, domain.RoleUser)
	require.NoError(t, f.db.Create(&entities.Rating{RecipeID: recipe.ID, UserID: rater.ID, Score: 4, RatedAt: time.Now()}).Error)
	require.NoError(t, f.db.Create(&entities.UserFavorite{RecipeID: recipe.ID, UserID: rater.ID, DateAdded: time.Now()}).Error)

	// other users cannot delete
	err = f.service.DeleteRecipe(ctx, testutil.Actor(rater), res.RecipeID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.service.DeleteRecipe(ctx, actor, res.RecipeID))

	for _, model := range []interface{}{&entities.Ingredient{}, &entities.RecipeStep{}, &entities.Rating{}, &entities.UserFavorite{}} {
		assert.Equal(t, int64(0), testutil.Count(t, f.db, model, "recipe_id = ?", recipe.ID))
	}
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, "id = ?", recipe.ID))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.ImageBlob{}, "1 = 1"))
}

func TestGetRecipes_Listing(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	mains := testutil.CreateCategory(t, f.db, "Main Courses")
	tart := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Apple Tart", true)
	stew := testutil.CreateRecipe(t, f.db, f.chef, mains, "Beef Stew", true)
	testutil.CreateRecipe(t, f.db, f.chef, mains, "Hidden Pie", false)

	rater := testutil.CreateUser(t, f.db, domain.RoleUser)
	other := testutil.CreateUser(t, f.db, domain.RoleUser)
	for _, r := range []entities.Rating{
		{RecipeID: stew.ID, UserID: rater.ID, Score: 4},
		{RecipeID: stew.ID, UserID: other.ID, Score: 5},
		{RecipeID: tart.ID, UserID: rater.ID, Score: 2},
	} {
		r.RatedAt = time.Now()
		require.NoError(t, f.db.Create(&r).Error)
	}

	page := domain.PageRequest{Page: 1, PageSize: 12}

	recipes, total, err := f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, SortBy: domain.SortRating})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Beef Stew", recipes[0].Title)
	assert.Equal(t, 4.5, recipes[0].AverageRating)
	assert.Equal(t, int64(2), recipes[0].TotalRatings)

	recipes, _, err = f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, SortBy: domain.SortTitle})
	require.NoError(t, err)
	assert.Equal(t, "Apple Tart", recipes[0].Title)

	recipes, total, err = f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, Search: "main cour"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Beef Stew", recipes[0].Title)

	// wildcards in the search text match literally
	_, total, err = f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, Search: "_"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	_, total, err = f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, Search: "%"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	recipes, _, err = f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, CategoryID: f.category.ID.String()})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Apple Tart", recipes[0].Title)

	_, _, err = f.service.GetRecipes(ctx, domain.RecipeQuery{PageRequest: page, CategoryID: "abc"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidCategoryFilter)
}

func TestGetMyRecipes(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	testutil.CreateRecipe(t, f.db, f.chef, f.category, "One", true)
	testutil.CreateRecipe(t, f.db, f.chef, f.category, "Two", false)
	rejected := testutil.CreateRecipe(t, f.db, f.chef, f.category, "Three", false)
	require.NoError(t, f.db.Model(rejected).Update("is_rejected", true).Error)
	testutil.CreateRecipe(t, f.db, testutil.CreateUser(t, f.db, domain.RoleChef), f.category, "Not mine", true)

	page := domain.PageRequest{Page: 1, PageSize: 12}
	res, err := f.service.GetMyRecipes(ctx, testutil.Actor(f.chef), domain.RecipeQuery{PageRequest: page, Status: domain.StatusFilterPending})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Two", res.Recipes[0].Title)
	assert.Equal(t, domain.ChefStatistics{TotalRecipes: 3, Approved: 1, Pending: 1, Rejected: 1}, res.Statistics)

	_, err = f.service.GetMyRecipes(ctx, testutil.Actor(f.chef), domain.RecipeQuery{PageRequest: page, Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusFilter)

	_, err = f.service.GetMyRecipes(ctx, testutil.Actor(f.chef), domain.RecipeQuery{PageRequest: page, CategoryID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategoryFilter)

	user := testutil.CreateUser(t, f.db, domain.RoleUser)
	_, err = f.service.GetMyRecipes(ctx, testutil.Actor(user), domain.RecipeQuery{PageRequest: page})
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestBuildIngredients_SortOrder(t *testing.T) {
	got := BuildIngredients([]domain.IngredientRequest{
		{Name: " Flour ", Quantity: " 2 ", Unit: "cups"},
		{Name: ""},
		{Name: "Eggs", Quantity: "3"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, entities.Ingredient{Name: "Flour", Quantity: "2", Unit: "cups", SortOrder: 1}, got[0])
	assert.Equal(t, 2, got[1].SortOrder)
}
