package handlers

import (
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/pkg/rating"

	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		CreateRating(c *fiber.Ctx) error
		GetRating(c *fiber.Ctx) error
		UpdateRating(c *fiber.Ctx) error
		DeleteRating(c *fiber.Ctx) error
		GetRecipeRatings(c *fiber.Ctx) error
		GetMyRatings(c *fiber.Ctx) error
		GetUserRatingForRecipe(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
	}
)

func NewRatingHandler(ratingService rating.RatingService) RatingHandler {
	return &ratingHandler{
		ratingService: ratingService,
	}
}

func (h *ratingHandler) CreateRating(c *fiber.Ctx) error {
	req := new(domain.CreateRatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.ratingService.CreateRating(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRating, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRating)
}

func (h *ratingHandler) GetRating(c *fiber.Ctx) error {
	res, err := h.ratingService.GetRating(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRating, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRating)
}

func (h *ratingHandler) UpdateRating(c *fiber.Ctx) error {
	req := new(domain.UpdateRatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.ratingService.UpdateRating(c.Context(), actorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRating, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRating)
}

func (h *ratingHandler) DeleteRating(c *fiber.Ctx) error {
	if err := h.ratingService.DeleteRating(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRating, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRating)
}

func (h *ratingHandler) GetRecipeRatings(c *fiber.Ctx) error {
	page := pageRequest(c, domain.DefaultRatingPageSize)

	res, err := h.ratingService.GetRecipeRatings(c.Context(), c.Params("recipeId"), page)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRatings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ratings":        res.Ratings,
		"average_rating": res.AverageRating,
		"total_ratings":  res.TotalRatings,
		"pagination":     pagination(page, res.TotalRatings),
	}, fiber.StatusOK, domain.MessageSuccessGetRatings)
}

func (h *ratingHandler) GetMyRatings(c *fiber.Ctx) error {
	page := pageRequest(c, domain.DefaultRatingPageSize)

	ratings, count, err := h.ratingService.GetMyRatings(c.Context(), actorFrom(c), page)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRatings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ratings":    ratings,
		"pagination": pagination(page, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRatings)
}

func (h *ratingHandler) GetUserRatingForRecipe(c *fiber.Ctx) error {
	res, err := h.ratingService.GetUserRatingForRecipe(c.Context(), actorFrom(c), c.Params("recipeId"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRating, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRating)
}
