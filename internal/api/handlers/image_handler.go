package handlers

import (
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/presenters"
	"recipe-sharing-platform/pkg/image"

	"github.com/gofiber/fiber/v2"
)

type (
	ImageHandler interface {
		GetRecipeImage(c *fiber.Ctx) error
		GetStepImage(c *fiber.Ctx) error
		GetUserProfileImage(c *fiber.Ctx) error
	}

	imageHandler struct {
		imageService image.ImageService
	}
)

func NewImageHandler(imageService image.ImageService) ImageHandler {
	return &imageHandler{
		imageService: imageService,
	}
}

func (h *imageHandler) GetRecipeImage(c *fiber.Ctx) error {
	img, err := h.imageService.GetRecipeImage(c.Context(), c.Params("id"))
	return sendImage(c, img, err)
}

func (h *imageHandler) GetStepImage(c *fiber.Ctx) error {
	img, err := h.imageService.GetStepImage(c.Context(), c.Params("id"))
	return sendImage(c, img, err)
}

func (h *imageHandler) GetUserProfileImage(c *fiber.Ctx) error {
	img, err := h.imageService.GetUserProfileImage(c.Context(), c.Params("id"))
	return sendImage(c, img, err)
}

func sendImage(c *fiber.Ctx, img domain.Image, err error) error {
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetImage, err)
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Status(fiber.StatusOK).Send(img.Data)
}
