package image

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"recipe-sharing-platform/domain"
)

const (
	FieldMainImage    = "Main image"
	FieldProfileImage = "Profile image"
)

var (
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
	allowedContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
)

func StepField(index int) string {
	return fmt.Sprintf("Step %d image", index+1)
}

// ValidateImage checks size, extension and declared content type, in that
// order, and returns the first failure message. A nil upload is valid.
func ValidateImage(upload *domain.ImageUpload, field string) string {
	if upload == nil {
		return ""
	}

	if upload.Size > domain.MaxImageSize {
		sizeMB := math.Round(float64(upload.Size)/1024/1024*100) / 100
		return fmt.Sprintf("%s is %sMB. Maximum allowed size is 5MB.", field, strconv.FormatFloat(sizeMB, 'f', -1, 64))
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if ext == "" {
		return fmt.Sprintf("%s must have a valid file extension.", field)
	}
	if !allowedExtensions[ext] {
		return fmt.Sprintf("%s must be a JPG, PNG, or WebP file. Found: %s", field, ext)
	}

	if !allowedContentTypes[strings.ToLower(upload.ContentType)] {
		return fmt.Sprintf("%s has invalid content type: %s. Must be JPG, PNG, or WebP.", field, upload.ContentType)
	}

	return ""
}

// ValidateRecipeImages validates the main image and every step image of a
// create or update payload.
func ValidateRecipeImages(payload domain.RecipeImages) error {
	var errs domain.FieldErrors

	if msg := ValidateImage(payload.GetMainImage(), FieldMainImage); msg != "" {
		errs = append(errs, domain.FieldError{Field: "main_image", Message: msg})
	}

	for i, img := range payload.GetStepImages() {
		if msg := ValidateImage(img, StepField(i)); msg != "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("steps[%d].image", i), Message: msg})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func ValidateProfileImage(upload *domain.ImageUpload) error {
	if msg := ValidateImage(upload, FieldProfileImage); msg != "" {
		return domain.FieldErrors{{Field: "image", Message: msg}}
	}
	return nil
}
