package rating

import (
	"context"
	"testing"
	"time"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ratingFixture struct {
	db       *gorm.DB
	service  RatingService
	chef     *entities.User
	user     *entities.User
	approved *entities.Recipe
	pending  *entities.Recipe
}

func newRatingFixture(t *testing.T) ratingFixture {
	db := testutil.NewDB(t)
	chef := testutil.CreateUser(t, db, domain.RoleChef)
	category := testutil.CreateCategory(t, db, "Desserts")

	return ratingFixture{
		db:       db,
		service:  NewRatingService(NewRatingRepository(db)),
		chef:     chef,
		user:     testutil.CreateUser(t, db, domain.RoleUser),
		approved: testutil.CreateRecipe(t, db, chef, category, "Cheesecake", true),
		pending:  testutil.CreateRecipe(t, db, chef, category, "Flan", false),
	}
}

func TestCreateRating(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	req := domain.CreateRatingRequest{RecipeID: f.approved.ID.String(), Score: 4, Comment: "  Creamy  "}
	res, err := f.service.CreateRating(ctx, testutil.Actor(f.user), req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Score)
	assert.Equal(t, "Creamy", res.Comment)
	assert.Equal(t, "Cheesecake", res.RecipeTitle)
	assert.Equal(t, f.user.FullName(), res.UserName)

	_, err = f.service.CreateRating(ctx, testutil.Actor(f.user), req)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "You have already rated this recipe. Use PUT to update your rating.")

	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Rating{}, "recipe_id = ?", f.approved.ID))
}

func TestCreateRating_Guards(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		author  *entities.User
		req     domain.CreateRatingRequest
		wantErr error
	}{
		{"own recipe", f.chef, domain.CreateRatingRequest{RecipeID: f.approved.ID.String(), Score: 5}, domain.ErrRateOwnRecipe},
		{"pending recipe", f.user, domain.CreateRatingRequest{RecipeID: f.pending.ID.String(), Score: 5}, domain.ErrRecipeNotRateable},
		{"unknown recipe", f.user, domain.CreateRatingRequest{RecipeID: "00000000-0000-0000-0000-000000000001", Score: 5}, domain.ErrRecipeNotRateable},
		{"score too high", f.user, domain.CreateRatingRequest{RecipeID: f.approved.ID.String(), Score: 6}, domain.ErrValidation},
		{"score missing", f.user, domain.CreateRatingRequest{RecipeID: f.approved.ID.String()}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateRating(ctx, testutil.Actor(tt.author), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitRating_Upserts(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.user)

	first, created, err := f.service.SubmitRating(ctx, actor, f.approved.ID.String(), domain.UpdateRatingRequest{Score: 2})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := f.service.SubmitRating(ctx, actor, f.approved.ID.String(), domain.UpdateRatingRequest{Score: 5, Comment: "Better the next day"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)

	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Rating{}, "recipe_id = ?", f.approved.ID))

	_, _, err = f.service.SubmitRating(ctx, testutil.Actor(f.chef), f.approved.ID.String(), domain.UpdateRatingRequest{Score: 5})
	assert.ErrorIs(t, err, domain.ErrRateOwnRecipe)
}

func TestOwnRatingOnly(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateRating(ctx, testutil.Actor(f.user), domain.CreateRatingRequest{RecipeID: f.approved.ID.String(), Score: 3})
	require.NoError(t, err)

	other := testutil.Actor(testutil.CreateUser(t, f.db, domain.RoleUser))

	_, err = f.service.GetRating(ctx, other, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.service.UpdateRating(ctx, other, res.ID, domain.UpdateRatingRequest{Score: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.service.DeleteRating(ctx, other, res.ID), domain.ErrNotFound)

	updated, err := f.service.UpdateRating(ctx, testutil.Actor(f.user), res.ID, domain.UpdateRatingRequest{Score: 1, Comment: "Changed my mind"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Score)

	got, err := f.service.GetRating(ctx, testutil.Actor(f.user), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed my mind", got.Comment)

	require.NoError(t, f.service.DeleteRating(ctx, testutil.Actor(f.user), res.ID))
	_, err = f.service.GetRating(ctx, testutil.Actor(f.user), res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetRecipeRatings_Average(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	empty, err := f.service.GetRecipeRatings(ctx, f.approved.ID.String(), domain.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.AverageRating)
	assert.Equal(t, int64(0), empty.TotalRatings)
	assert.Empty(t, empty.Ratings)

	raters := []*entities.User{f.user, testutil.CreateUser(t, f.db, domain.RoleUser), testutil.CreateUser(t, f.db, domain.RoleUser)}
	scores := []int{4, 5, 5}
	base := time.Now().Add(-time.Hour)
	for i, rater := range raters {
		require.NoError(t, f.db.Create(&entities.Rating{
			RecipeID: f.approved.ID,
			UserID:   rater.ID,
			Score:    scores[i],
			RatedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	// the average covers every rating, not only the page
	res, err := f.service.GetRecipeRatings(ctx, f.approved.ID.String(), domain.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 4.7, res.AverageRating)
	assert.Equal(t, int64(3), res.TotalRatings)
	require.Len(t, res.Ratings, 2)
	assert.Equal(t, raters[2].ID.String(), res.Ratings[0].UserID)

	_, err = f.service.GetRecipeRatings(ctx, f.pending.ID.String(), domain.PageRequest{Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserRatingForRecipe(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.user)

	res, err := f.service.GetUserRatingForRecipe(ctx, actor, f.approved.ID.String())
	require.NoError(t, err)
	assert.False(t, res.HasRating)
	assert.Nil(t, res.Rating)

	_, _, err = f.service.SubmitRating(ctx, actor, f.approved.ID.String(), domain.UpdateRatingRequest{Score: 4})
	require.NoError(t, err)

	res, err = f.service.GetUserRatingForRecipe(ctx, actor, f.approved.ID.String())
	require.NoError(t, err)
	assert.True(t, res.HasRating)
	require.NotNil(t, res.Rating)
	assert.Equal(t, 4, res.Rating.Score)

	mine, total, err := f.service.GetMyRatings(ctx, actor, domain.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Cheesecake", mine[0].RecipeTitle)
}

func TestRoundAverage(t *testing.T) {
	assert.Equal(t, 4.5, RoundAverage(4.5))
	assert.Equal(t, 3.3, RoundAverage(10.0/3.0))
	assert.Equal(t, 0.0, RoundAverage(0))
}

// staleRatings misses the caller's existing rating, as a concurrent request
// racing the first insert would.
type staleRatings struct {
	RatingRepository
}

func (staleRatings) GetUserRating(ctx context.Context, userID string, recipeID string) (*entities.Rating, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCreateRating_ConcurrentDuplicate(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	req := domain.CreateRatingRequest{RecipeID: f.approved.ID.String(), Score: 5}

	_, err := f.service.CreateRating(ctx, testutil.Actor(f.user), req)
	require.NoError(t, err)

	racing := NewRatingService(staleRatings{NewRatingRepository(f.db)})
	_, err = racing.CreateRating(ctx, testutil.Actor(f.user), req)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Rating{}, "recipe_id = ?", f.approved.ID))
}
