package handlers

import (
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/pkg/favorite"

	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		GetFavorites(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		CheckFavorite(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService) FavoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	query := domain.FavoriteQuery{
		PageRequest: pageRequest(c, domain.DefaultRecipePageSize),
		Search:      c.Query("search"),
	}

	favorites, count, err := h.favoriteService.GetFavorites(c.Context(), actorFrom(c), query)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"favorites":  favorites,
		"pagination": pagination(query.PageRequest, count),
	}, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *favoriteHandler) AddFavorite(c *fiber.Ctx) error {
	if err := h.favoriteService.AddFavorite(c.Context(), actorFrom(c), c.Params("recipeId")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAddFavorite)
}

func (h *favoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	if err := h.favoriteService.RemoveFavorite(c.Context(), actorFrom(c), c.Params("recipeId")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}

func (h *favoriteHandler) CheckFavorite(c *fiber.Ctx) error {
	res, err := h.favoriteService.CheckFavorite(c.Context(), actorFrom(c), c.Params("recipeId"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckFavorite)
}
