package moderation

import (
	"context"
	"errors"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/metrics"
	"recipe-sharing-platform/internal/utils/mailing"
	"recipe-sharing-platform/pkg/policy"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	ModerationService interface {
		Approve(ctx context.Context, actor policy.Actor, recipeID string, notes *string) error
		Reject(ctx context.Context, actor policy.Actor, recipeID string, notes string) error
		PendingRecipes(ctx context.Context, actor policy.Actor, page domain.PageRequest) ([]domain.RecipeResponse, int64, error)
	}

	moderationService struct {
		recipeRepository recipe.RecipeRepository
		mailer           mailing.Mailer
		appURL           string
	}
)

func NewModerationService(recipeRepository recipe.RecipeRepository, mailer mailing.Mailer, appURL string) ModerationService {
	return &moderationService{
		recipeRepository: recipeRepository,
		mailer:           mailer,
		appURL:           appURL,
	}
}

// Approve publishes a recipe. Decisions are not guarded by the current state,
// so an approved recipe can be approved again with new notes.
func (s *moderationService) Approve(ctx context.Context, actor policy.Actor, recipeID string, notes *string) error {
	if !policy.CanModerate(actor) {
		return domain.ErrForbidden
	}

	r, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	text := ""
	if notes != nil {
		text = strings.TrimSpace(*notes)
	}
	r.Approve(text)

	if err := s.recipeRepository.UpdateModeration(ctx, r); err != nil {
		return err
	}

	metrics.ModerationDecisions.WithLabelValues("approve").Inc()
	s.notify(r, text, true)
	return nil
}

func (s *moderationService) Reject(ctx context.Context, actor policy.Actor, recipeID string, notes string) error {
	if !policy.CanModerate(actor) {
		return domain.ErrForbidden
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		return domain.ErrRejectionReasonRequired
	}

	r, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	r.Reject(notes)

	if err := s.recipeRepository.UpdateModeration(ctx, r); err != nil {
		return err
	}

	metrics.ModerationDecisions.WithLabelValues("reject").Inc()
	s.notify(r, notes, false)
	return nil
}

func (s *moderationService) PendingRecipes(ctx context.Context, actor policy.Actor, page domain.PageRequest) ([]domain.RecipeResponse, int64, error) {
	if !policy.CanModerate(actor) {
		return nil, 0, domain.ErrForbidden
	}

	recipes, count, err := s.recipeRepository.GetPendingRecipes(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	stats, err := s.recipeRepository.GetRecipeStats(ctx, recipe.RecipeIDs(recipes))
	if err != nil {
		return nil, 0, err
	}

	return recipe.ToRecipeResponses(recipes, stats), count, nil
}

func (s *moderationService) findRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// notify mails the owning chef. A failed mail never undoes the decision.
func (s *moderationService) notify(r *entities.Recipe, notes string, approved bool) {
	if s.mailer == nil || r.User == nil || r.User.Email == "" {
		return
	}

	err := s.mailer.SendMail(
		r.User.Email,
		mailing.ModerationSubject(r.Title, approved),
		mailing.ModerationBody(r.User.FullName(), r.Title, notes, approved, s.appURL),
	)
	if err != nil && !errors.Is(err, mailing.ErrMailDisabled) {
		zap.L().Warn("failed to send moderation mail",
			zap.String("recipe_id", r.ID.String()),
			zap.String("to", r.User.Email),
			zap.Error(err),
		)
	}
}
