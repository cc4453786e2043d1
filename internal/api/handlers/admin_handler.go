package handlers

import (
	"fmt"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/pkg/admin"
	"recipe-sharing-platform/pkg/moderation"

	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetDashboard(c *fiber.Ctx) error
		GetPendingRecipes(c *fiber.Ctx) error
		ApproveRecipe(c *fiber.Ctx) error
		RejectRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		UpdateUserRole(c *fiber.Ctx) error
		ToggleLockout(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService      admin.AdminService
		moderationService moderation.ModerationService
	}
)

func NewAdminHandler(adminService admin.AdminService, moderationService moderation.ModerationService) AdminHandler {
	return &adminHandler{
		adminService:      adminService,
		moderationService: moderationService,
	}
}

func (h *adminHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.adminService.GetDashboard(c.Context(), actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *adminHandler) GetPendingRecipes(c *fiber.Ctx) error {
	page := pageRequest(c, domain.DefaultRecipePageSize)

	recipes, count, err := h.moderationService.PendingRecipes(c.Context(), actorFrom(c), page)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetPending, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":    recipes,
		"pagination": pagination(page, count),
	}, fiber.StatusOK, domain.MessageSuccessGetPending)
}

func (h *adminHandler) ApproveRecipe(c *fiber.Ctx) error {
	req, err := parseModeration(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.moderationService.Approve(c.Context(), actorFrom(c), c.Params("id"), req.Notes); err != nil {
		return presenters.HandleError(c, domain.MessageFailedApproveRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessApproveRecipe)
}

func (h *adminHandler) RejectRecipe(c *fiber.Ctx) error {
	req, err := parseModeration(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := h.moderationService.Reject(c.Context(), actorFrom(c), c.Params("id"), notes); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRejectRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRejectRecipe)
}

func (h *adminHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.adminService.DeleteRecipe(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	query := domain.UserQuery{
		PageRequest: pageRequest(c, 20),
		Search:      c.Query("search"),
		Role:        c.Query("roleFilter", c.Query("role")),
	}

	users, count, err := h.adminService.GetUsers(c.Context(), actorFrom(c), query)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"users":      users,
		"pagination": pagination(query.PageRequest, count),
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) UpdateUserRole(c *fiber.Ctx) error {
	req := new(domain.UpdateRoleRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.adminService.UpdateUserRole(c.Context(), actorFrom(c), c.Params("id"), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateUserRole, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, fmt.Sprintf(domain.MessageSuccessUpdateUserRole, req.Role))
}

func (h *adminHandler) ToggleLockout(c *fiber.Ctx) error {
	disabled, err := h.adminService.ToggleLockout(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedToggleLockout, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"is_disabled": disabled}, fiber.StatusOK, domain.MessageSuccessToggleLockout)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.adminService.DeleteUser(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteUser, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}

// parseModeration tolerates an empty body, which approves without notes.
func parseModeration(c *fiber.Ctx) (*domain.ModerationRequest, error) {
	req := new(domain.ModerationRequest)
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(req); err != nil {
		return nil, err
	}
	return req, nil
}
