package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/testutil"
	"recipe-sharing-platform/internal/utils/mailing"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(toEmail string, subject string, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{toEmail, subject, body})
	return nil
}

type moderationFixture struct {
	db      *gorm.DB
	mailer  *fakeMailer
	service ModerationService
	admin   *entities.User
	chef    *entities.User
	recipe  *entities.Recipe
}

func newModerationFixture(t *testing.T) moderationFixture {
	db := testutil.NewDB(t)
	mailer := &fakeMailer{}
	chef := testutil.CreateUser(t, db, domain.RoleChef)
	category := testutil.CreateCategory(t, db, "Breakfast")

	return moderationFixture{
		db:      db,
		mailer:  mailer,
		service: NewModerationService(recipe.NewRecipeRepository(db), mailer, "http://localhost:8080"),
		admin:   testutil.CreateUser(t, db, domain.RoleAdmin),
		chef:    chef,
		recipe:  testutil.CreateRecipe(t, db, chef, category, "Pancakes", false),
	}
}

func (f moderationFixture) reload(t *testing.T) entities.Recipe {
	var r entities.Recipe
	require.NoError(t, f.db.First(&r, "id = ?", f.recipe.ID).Error)
	return r
}

func TestReject_SetsNotes(t *testing.T) {
	f := newModerationFixture(t)

	err := f.service.Reject(context.Background(), testutil.Actor(f.admin), f.recipe.ID.String(), "too salty")
	require.NoError(t, err)

	r := f.reload(t)
	assert.False(t, r.IsApproved)
	assert.True(t, r.IsRejected)
	require.NotNil(t, r.ModerationNotes)
	assert.Equal(t, "too salty", *r.ModerationNotes)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, f.chef.Email, f.mailer.sent[0].to)
	assert.Equal(t, `Your recipe "Pancakes" needs changes`, f.mailer.sent[0].subject)
	assert.Contains(t, f.mailer.sent[0].body, "too salty")
}

func TestReject_RequiresReason(t *testing.T) {
	f := newModerationFixture(t)

	err := f.service.Reject(context.Background(), testutil.Actor(f.admin), f.recipe.ID.String(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Rejection reason is required")

	r := f.reload(t)
	assert.False(t, r.IsRejected)
	assert.Empty(t, f.mailer.sent)
}

func TestApprove_AfterReject(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()
	actor := testutil.Actor(f.admin)

	require.NoError(t, f.service.Reject(ctx, actor, f.recipe.ID.String(), "needs photos"))
	require.NoError(t, f.service.Approve(ctx, actor, f.recipe.ID.String(), nil))

	r := f.reload(t)
	assert.True(t, r.IsApproved)
	assert.False(t, r.IsRejected)
	require.NotNil(t, r.ModerationNotes)
	assert.Equal(t, "", *r.ModerationNotes)

	notes := "Lovely"
	require.NoError(t, f.service.Approve(ctx, actor, f.recipe.ID.String(), &notes))
	r = f.reload(t)
	assert.Equal(t, "Lovely", *r.ModerationNotes)
}

func TestApprove_MailFailureKeepsDecision(t *testing.T) {
	f := newModerationFixture(t)
	f.mailer.err = errors.New("smtp down")

	require.NoError(t, f.service.Approve(context.Background(), testutil.Actor(f.admin), f.recipe.ID.String(), nil))
	assert.True(t, f.reload(t).IsApproved)

	f.mailer.err = mailing.ErrMailDisabled
	require.NoError(t, f.service.Reject(context.Background(), testutil.Actor(f.admin), f.recipe.ID.String(), "again"))
	assert.True(t, f.reload(t).IsRejected)
}

func TestModeration_Guards(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	err := f.service.Approve(ctx, testutil.Actor(f.chef), f.recipe.ID.String(), nil)
	assert.ErrorIs(t, err, domain.ErrAuthorization)

	err = f.service.Approve(ctx, testutil.Actor(f.admin), "00000000-0000-0000-0000-000000000001", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.service.Reject(ctx, testutil.Actor(f.admin), "bogus", "reason")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingRecipes_OldestFirst(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	category := testutil.CreateCategory(t, f.db, "Desserts")
	newer := testutil.CreateRecipe(t, f.db, f.chef, category, "Newer", false)
	require.NoError(t, f.db.Model(newer).Update("created_at", time.Now().Add(time.Hour)).Error)
	testutil.CreateRecipe(t, f.db, f.chef, category, "Approved", true)

	recipes, total, err := f.service.PendingRecipes(ctx, testutil.Actor(f.admin), domain.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Pancakes", recipes[0].Title)
	assert.Equal(t, "Newer", recipes[1].Title)
}
