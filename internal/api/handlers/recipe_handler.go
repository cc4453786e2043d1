package handlers

import (
	"fmt"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

const (
	formRecipePayload = "recipe"
	formMainImage     = "main_image"
	formStepImage     = "step_image_%d"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	query := domain.RecipeQuery{
		PageRequest: pageRequest(c, domain.DefaultRecipePageSize),
		Search:      c.Query("search"),
		CategoryID:  c.Query("categoryId"),
		SortBy:      c.Query("sortBy", domain.SortNewest),
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), query)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":    recipes,
		"pagination": pagination(query.PageRequest, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetMyRecipes(c *fiber.Ctx) error {
	query := domain.RecipeQuery{
		PageRequest: pageRequest(c, domain.DefaultRecipePageSize),
		Search:      c.Query("search"),
		CategoryID:  c.Query("categoryId"),
		SortBy:      c.Query("sortBy", domain.SortNewest),
		Status:      strings.ToLower(c.Query("status", domain.StatusFilterAll)),
	}

	res, err := h.recipeService.GetMyRecipes(c.Context(), actorFrom(c), query)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":    res.Recipes,
		"statistics": res.Statistics,
		"pagination": pagination(query.PageRequest, res.Total),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := parseRecipeBody(c, req, &req.RecipeRequest); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	req := new(domain.UpdateRecipeRequest)
	if err := parseRecipeBody(c, req, &req.RecipeRequest); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.recipeService.UpdateRecipe(c.Context(), actorFrom(c), c.Params("id"), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

// parseRecipeBody accepts either a JSON body or a multipart form whose
// "recipe" field holds the JSON payload, with the main image under
// "main_image" and step images under "step_image_0", "step_image_1", ...
func parseRecipeBody(c *fiber.Ctx, dst interface{}, recipeReq *domain.RecipeRequest) error {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return c.BodyParser(dst)
	}

	payload := c.FormValue(formRecipePayload)
	if payload == "" {
		return fmt.Errorf("missing %q form field", formRecipePayload)
	}
	if err := c.App().Config().JSONDecoder([]byte(payload), dst); err != nil {
		return err
	}

	mainImage, err := formImage(c, formMainImage)
	if err != nil {
		return err
	}
	recipeReq.MainImage = mainImage

	for i := range recipeReq.Steps {
		stepImage, err := formImage(c, fmt.Sprintf(formStepImage, i))
		if err != nil {
			return err
		}
		recipeReq.Steps[i].Image = stepImage
	}
	return nil
}
