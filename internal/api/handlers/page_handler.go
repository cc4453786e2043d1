package handlers

import (
	"fmt"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/internal/session"
	"recipe-sharing-platform/pkg/admin"
	"recipe-sharing-platform/pkg/favorite"
	"recipe-sharing-platform/pkg/rating"
	"recipe-sharing-platform/pkg/recipe"
	"recipe-sharing-platform/pkg/user"

	"github.com/gofiber/fiber/v2"
)

const recentRatingsOnDetails = 5

// PageHandler serves the cookie session flow. It shares every service and
// policy with the bearer token API and answers JSON.
type (
	PageHandler interface {
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		RecipeDetails(c *fiber.Ctx) error
		SubmitRating(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		UpdateUserRole(c *fiber.Ctx) error
		ToggleLockout(c *fiber.Ctx) error
	}

	pageHandler struct {
		sessions        *session.Manager
		userService     user.UserService
		recipeService   recipe.RecipeService
		ratingService   rating.RatingService
		favoriteService favorite.FavoriteService
		adminService    admin.AdminService
	}
)

func NewPageHandler(
	sessions *session.Manager,
	userService user.UserService,
	recipeService recipe.RecipeService,
	ratingService rating.RatingService,
	favoriteService favorite.FavoriteService,
	adminService admin.AdminService,
) PageHandler {
	return &pageHandler{
		sessions:        sessions,
		userService:     userService,
		recipeService:   recipeService,
		ratingService:   ratingService,
		favoriteService: favoriteService,
		adminService:    adminService,
	}
}

func (h *pageHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	u, err := h.userService.Authenticate(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}

	if err := h.sessions.Save(c, u.ID.String(), u.Role); err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, user.ToUserResponse(u), fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *pageHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *pageHandler) RecipeDetails(c *fiber.Ctx) error {
	actor := actorFrom(c)
	recipeID := c.Params("id")

	detail, err := h.recipeService.GetRecipe(c.Context(), actor, recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}

	data := fiber.Map{
		"recipe":         detail,
		"recent_ratings": []domain.RatingResponse{},
		"user_rating":    nil,
		"is_favorite":    false,
		"is_owner":       detail.ChefID == actor.UserID,
	}

	if detail.Status == entities.StatusApproved {
		ratings, err := h.ratingService.GetRecipeRatings(c.Context(), recipeID, domain.PageRequest{Page: 1, PageSize: recentRatingsOnDetails})
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
		}
		data["recent_ratings"] = ratings.Ratings
	}

	if !actor.IsAnonymous() {
		own, err := h.ratingService.GetUserRatingForRecipe(c.Context(), actor, recipeID)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
		}
		data["user_rating"] = own.Rating

		fav, err := h.favoriteService.CheckFavorite(c.Context(), actor, recipeID)
		if err != nil {
			return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
		}
		data["is_favorite"] = fav.IsFavorite
	}

	return presenters.SuccessResponse(c, data, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *pageHandler) SubmitRating(c *fiber.Ctx) error {
	req := new(domain.UpdateRatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, created, err := h.ratingService.SubmitRating(c.Context(), actorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRating, err)
	}

	if created {
		return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageRatingThanks)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageRatingChanged)
}

func (h *pageHandler) ToggleFavorite(c *fiber.Ctx) error {
	res, err := h.favoriteService.ToggleFavorite(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, res.Message)
}

func (h *pageHandler) UpdateUserRole(c *fiber.Ctx) error {
	req := new(domain.UpdateRoleRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.adminService.UpdateUserRole(c.Context(), actorFrom(c), c.Params("id"), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateUserRole, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, fmt.Sprintf(domain.MessageSuccessUpdateUserRole, req.Role))
}

func (h *pageHandler) ToggleLockout(c *fiber.Ctx) error {
	disabled, err := h.adminService.ToggleLockout(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedToggleLockout, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"is_disabled": disabled}, fiber.StatusOK, domain.MessageSuccessToggleLockout)
}
