package handlers

import (
	"io"
	"mime/multipart"
	"strconv"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/pkg/policy"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// actorFrom reads the caller set by the auth middlewares. Public routes get
// the zero Actor.
func actorFrom(c *fiber.Ctx) policy.Actor {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	return policy.Actor{UserID: userID, Role: role}
}

func pageRequest(c *fiber.Ctx, defaultSize int) domain.PageRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("pageSize", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return domain.PageRequest{Page: page, PageSize: size}
}

func pagination(page domain.PageRequest, total int64) fiber.Map {
	return fiber.Map{
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total":       total,
		"total_pages": (total + int64(page.PageSize) - 1) / int64(page.PageSize),
	}
}

// readImage converts an uploaded file into an ImageUpload. The content is only
// read when the declared size is within the limit, so oversized files are
// rejected by validation without being buffered.
func readImage(file *multipart.FileHeader) (*domain.ImageUpload, error) {
	if file == nil {
		return nil, nil
	}

	upload := &domain.ImageUpload{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
	}
	if file.Size == 0 || file.Size > domain.MaxImageSize {
		return upload, nil
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	upload.Data = data
	return upload, nil
}

// formImage returns the named file of a multipart request or nil when absent.
func formImage(c *fiber.Ctx, name string) (*domain.ImageUpload, error) {
	file, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	return readImage(file)
}
