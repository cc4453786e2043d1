package recipe

import (
	"context"
	"errors"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/metrics"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/internal/utils/storage"
	"recipe-sharing-platform/pkg/image"
	"recipe-sharing-platform/pkg/policy"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, query domain.RecipeQuery) ([]domain.RecipeResponse, int64, error)
		GetRecipe(ctx context.Context, actor policy.Actor, recipeID string) (domain.RecipeDetailResponse, error)
		GetMyRecipes(ctx context.Context, actor policy.Actor, query domain.RecipeQuery) (domain.MyRecipesResponse, error)
		CreateRecipe(ctx context.Context, actor policy.Actor, req domain.CreateRecipeRequest) (domain.CreateRecipeResponse, error)
		UpdateRecipe(ctx context.Context, actor policy.Actor, recipeID string, req domain.UpdateRecipeRequest) error
		DeleteRecipe(ctx context.Context, actor policy.Actor, recipeID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		store            storage.ImageStore
	}
)

func NewRecipeService(recipeRepository RecipeRepository, store storage.ImageStore) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		store:            store,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, query domain.RecipeQuery) ([]domain.RecipeResponse, int64, error) {
	if err := checkCategoryFilter(query.CategoryID); err != nil {
		return nil, 0, err
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	stats, err := s.recipeRepository.GetRecipeStats(ctx, RecipeIDs(recipes))
	if err != nil {
		return nil, 0, err
	}

	return ToRecipeResponses(recipes, stats), count, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, actor policy.Actor, recipeID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.findRecipe(ctx, recipeID, domain.ErrRecipeNotVisible)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	// pending and rejected recipes are hidden behind the same not found
	if !policy.CanView(actor, recipe) {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotVisible
	}

	stats, err := s.recipeRepository.GetRecipeStats(ctx, []uuid.UUID{recipe.ID})
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	return ToRecipeDetailResponse(recipe, stats[recipe.ID]), nil
}

func (s *recipeService) GetMyRecipes(ctx context.Context, actor policy.Actor, query domain.RecipeQuery) (domain.MyRecipesResponse, error) {
	if !actor.IsChef() {
		return domain.MyRecipesResponse{}, domain.ErrForbidden
	}

	switch query.Status {
	case "":
		query.Status = domain.StatusFilterAll
	case domain.StatusFilterAll, domain.StatusFilterApproved, domain.StatusFilterPending, domain.StatusFilterRejected:
	default:
		return domain.MyRecipesResponse{}, domain.ErrInvalidStatusFilter
	}
	if err := checkCategoryFilter(query.CategoryID); err != nil {
		return domain.MyRecipesResponse{}, err
	}

	recipes, count, err := s.recipeRepository.GetRecipesByOwner(ctx, actor.UserID, query)
	if err != nil {
		return domain.MyRecipesResponse{}, err
	}

	stats, err := s.recipeRepository.GetRecipeStats(ctx, RecipeIDs(recipes))
	if err != nil {
		return domain.MyRecipesResponse{}, err
	}

	statistics, err := s.recipeRepository.GetOwnerStatistics(ctx, actor.UserID)
	if err != nil {
		return domain.MyRecipesResponse{}, err
	}

	return domain.MyRecipesResponse{
		Recipes:    ToRecipeResponses(recipes, stats),
		Statistics: statistics,
		Total:      count,
	}, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, actor policy.Actor, req domain.CreateRecipeRequest) (domain.CreateRecipeResponse, error) {
	if !policy.CanCreateRecipe(actor) {
		return domain.CreateRecipeResponse{}, domain.ErrOnlyChefsCanCreate
	}

	ingredients, steps, err := s.prepareContent(ctx, &req, &req.RecipeRequest)
	if err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	ownerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return domain.CreateRecipeResponse{}, domain.ErrParseUUID
	}

	uploads := newUploadSet(s.store)

	recipe := &entities.Recipe{
		ID:     uuid.New(),
		UserID: ownerID,
	}
	applyFields(recipe, &req.RecipeRequest)
	recipe.ResetModeration()

	if req.MainImage != nil {
		key, err := uploads.save(ctx, storage.FolderRecipes, req.MainImage)
		if err != nil {
			return domain.CreateRecipeResponse{}, err
		}
		recipe.MainImageKey = key
	}

	for i := range steps {
		if steps[i].upload == nil {
			continue
		}
		key, err := uploads.save(ctx, storage.FolderSteps, steps[i].upload)
		if err != nil {
			uploads.rollback(ctx)
			return domain.CreateRecipeResponse{}, err
		}
		steps[i].step.ImageKey = key
	}

	recipe.Ingredients = ingredients
	recipe.Steps = stepEntities(steps)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		uploads.rollback(ctx)
		return domain.CreateRecipeResponse{}, err
	}

	metrics.RecipesSubmitted.WithLabelValues("create").Inc()

	return domain.CreateRecipeResponse{RecipeID: recipe.ID.String()}, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, actor policy.Actor, recipeID string, req domain.UpdateRecipeRequest) error {
	recipe, err := s.findRecipe(ctx, recipeID, domain.ErrRecipeNotEditable)
	if err != nil {
		return err
	}

	if !policy.CanModify(actor, recipe) {
		return domain.ErrRecipeNotEditable
	}

	ingredients, steps, err := s.prepareContent(ctx, &req, &req.RecipeRequest)
	if err != nil {
		return err
	}

	uploads := newUploadSet(s.store)
	var superseded []string

	switch {
	case req.RemoveMainImage:
		superseded = append(superseded, recipe.MainImageKey)
		recipe.MainImageKey = ""
	case req.MainImage != nil:
		key, err := uploads.save(ctx, storage.FolderRecipes, req.MainImage)
		if err != nil {
			return err
		}
		superseded = append(superseded, recipe.MainImageKey)
		recipe.MainImageKey = key
	}

	// step images follow the step number: a step without a new upload or a
	// remove flag keeps the image of the previous step at the same number
	previous := make(map[int]string, len(recipe.Steps))
	for _, step := range recipe.Steps {
		if step.ImageKey != "" {
			previous[step.StepNumber] = step.ImageKey
		}
	}
	kept := make(map[string]bool)
	for i := range steps {
		st := &steps[i]
		switch {
		case st.upload != nil:
			key, err := uploads.save(ctx, storage.FolderSteps, st.upload)
			if err != nil {
				uploads.rollback(ctx)
				return err
			}
			st.step.ImageKey = key
		case st.remove:
			st.step.ImageKey = ""
		default:
			st.step.ImageKey = previous[st.step.StepNumber]
			if st.step.ImageKey != "" {
				kept[st.step.ImageKey] = true
			}
		}
	}
	for _, key := range previous {
		if !kept[key] {
			superseded = append(superseded, key)
		}
	}

	applyFields(recipe, &req.RecipeRequest)
	recipe.ResetModeration()
	recipe.Ingredients = ingredients
	recipe.Steps = stepEntities(steps)
	recipe.User = nil
	recipe.Category = nil

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		uploads.rollback(ctx)
		return err
	}

	metrics.RecipesSubmitted.WithLabelValues("update").Inc()
	s.discard(ctx, "update recipe", recipe.ID, superseded...)
	return nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, actor policy.Actor, recipeID string) error {
	recipe, err := s.findRecipe(ctx, recipeID, domain.ErrRecipeNotDeletable)
	if err != nil {
		return err
	}

	if !policy.CanDelete(actor, recipe) {
		return domain.ErrRecipeNotDeletable
	}

	keys, err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID)
	if err != nil {
		return err
	}

	s.discard(ctx, "delete recipe", recipe.ID, keys...)
	return nil
}

// findRecipe loads a recipe, reporting malformed and unknown ids as notFound.
func (s *recipeService) findRecipe(ctx context.Context, recipeID string, notFound error) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, notFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return recipe, nil
}

// prepareContent validates fields, images, ingredients, steps and category, in that
// order, and returns the rows to persist.
func (s *recipeService) prepareContent(ctx context.Context, images domain.RecipeImages, req *domain.RecipeRequest) ([]entities.Ingredient, []preparedStep, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, err
	}

	if err := image.ValidateRecipeImages(images); err != nil {
		return nil, nil, err
	}

	ingredients := BuildIngredients(req.Ingredients)
	if len(ingredients) == 0 {
		return nil, nil, domain.ErrIngredientsRequired
	}

	steps := buildSteps(req.Steps)
	if len(steps) == 0 {
		return nil, nil, domain.ErrStepsRequired
	}

	exists, err := s.recipeRepository.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, domain.ErrRecipeCategoryNotFound
	}

	return ingredients, steps, nil
}

func (s *recipeService) discard(ctx context.Context, operation string, recipeID uuid.UUID, keys ...string) {
	if err := image.Discard(ctx, s.store, keys...); err != nil {
		zap.L().Warn("failed to delete stored images",
			zap.String("operation", operation),
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
	}
}

func applyFields(recipe *entities.Recipe, req *domain.RecipeRequest) {
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = strings.TrimSpace(req.Description)
	recipe.PrepTimeMinutes = req.PrepTimeMinutes
	recipe.CookTimeMinutes = req.CookTimeMinutes
	recipe.Servings = req.Servings
	recipe.CategoryID = uuid.MustParse(req.CategoryID)
}

// BuildIngredients trims the submitted ingredients and silently drops rows
// with a blank name.
func BuildIngredients(reqs []domain.IngredientRequest) []entities.Ingredient {
	ingredients := make([]entities.Ingredient, 0, len(reqs))
	for _, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, entities.Ingredient{
			Name:      name,
			Quantity:  strings.TrimSpace(req.Quantity),
			Unit:      strings.TrimSpace(req.Unit),
			SortOrder: len(ingredients) + 1,
		})
	}
	return ingredients
}

type preparedStep struct {
	step   entities.RecipeStep
	upload *domain.ImageUpload
	remove bool
}

// buildSteps drops steps with a blank description and numbers the remaining
// ones 1..N in submission order.
func buildSteps(reqs []domain.StepRequest) []preparedStep {
	steps := make([]preparedStep, 0, len(reqs))
	for _, req := range reqs {
		description := strings.TrimSpace(req.Description)
		if description == "" {
			continue
		}
		steps = append(steps, preparedStep{
			step: entities.RecipeStep{
				StepNumber:  len(steps) + 1,
				Description: description,
			},
			upload: req.Image,
			remove: req.RemoveImage,
		})
	}
	return steps
}

func stepEntities(steps []preparedStep) []entities.RecipeStep {
	res := make([]entities.RecipeStep, 0, len(steps))
	for _, st := range steps {
		res = append(res, st.step)
	}
	return res
}

// uploadSet remembers the images stored during one write so they can be
// removed again if the write fails.
type uploadSet struct {
	store storage.ImageStore
	keys  []string
}

// checkCategoryFilter rejects a category filter that cannot be a category id.
func checkCategoryFilter(categoryID string) error {
	if categoryID == "" {
		return nil
	}
	if _, err := uuid.Parse(categoryID); err != nil {
		return domain.ErrInvalidCategoryFilter
	}
	return nil
}

func newUploadSet(store storage.ImageStore) *uploadSet {
	return &uploadSet{store: store}
}

func (u *uploadSet) save(ctx context.Context, folder string, upload *domain.ImageUpload) (string, error) {
	key, err := image.Save(ctx, u.store, folder, upload)
	if err != nil {
		return "", err
	}
	u.keys = append(u.keys, key)
	return key, nil
}

func (u *uploadSet) rollback(ctx context.Context) {
	if err := image.Discard(ctx, u.store, u.keys...); err != nil {
		zap.L().Warn("failed to roll back uploaded images", zap.Strings("keys", u.keys), zap.Error(err))
	}
}
