package handlers

import (
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/pkg/profile"

	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		UploadProfileImage(c *fiber.Ctx) error
		DeleteProfileImage(c *fiber.Ctx) error
		ChangePassword(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
	}
)

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
	}
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	res, err := h.profileService.GetProfile(c.Context(), actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) UpdateProfile(c *fiber.Ctx) error {
	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.profileService.UpdateProfile(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *profileHandler) UploadProfileImage(c *fiber.Ctx) error {
	upload, err := formImage(c, "image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	url, err := h.profileService.UploadProfileImage(c.Context(), actorFrom(c), upload)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *profileHandler) DeleteProfileImage(c *fiber.Ctx) error {
	if err := h.profileService.DeleteProfileImage(c.Context(), actorFrom(c)); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteImage)
}

func (h *profileHandler) ChangePassword(c *fiber.Ctx) error {
	req := new(domain.ChangePasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.profileService.ChangePassword(c.Context(), actorFrom(c), *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedChangePassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessChangePassword)
}
