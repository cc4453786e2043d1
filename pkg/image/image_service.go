package image

import (
	"context"
	"errors"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ImageService interface {
		GetRecipeImage(ctx context.Context, recipeID string) (domain.Image, error)
		GetStepImage(ctx context.Context, stepID string) (domain.Image, error)
		GetUserProfileImage(ctx context.Context, userID string) (domain.Image, error)
	}

	imageService struct {
		imageRepository ImageRepository
		store           storage.ImageStore
	}
)

func NewImageService(imageRepository ImageRepository, store storage.ImageStore) ImageService {
	return &imageService{
		imageRepository: imageRepository,
		store:           store,
	}
}

func (s *imageService) GetRecipeImage(ctx context.Context, recipeID string) (domain.Image, error) {
	return s.load(ctx, recipeID, s.imageRepository.GetRecipeImageKey)
}

func (s *imageService) GetStepImage(ctx context.Context, stepID string) (domain.Image, error) {
	return s.load(ctx, stepID, s.imageRepository.GetStepImageKey)
}

func (s *imageService) GetUserProfileImage(ctx context.Context, userID string) (domain.Image, error) {
	return s.load(ctx, userID, s.imageRepository.GetProfileImageKey)
}

func (s *imageService) load(ctx context.Context, id string, lookup func(context.Context, string) (string, error)) (domain.Image, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Image{}, domain.ErrImageNotFound
	}

	key, err := lookup(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Image{}, domain.ErrImageNotFound
		}
		return domain.Image{}, err
	}
	if key == "" {
		return domain.Image{}, domain.ErrImageNotFound
	}

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return domain.Image{}, domain.ErrImageNotFound
		}
		return domain.Image{}, err
	}
	if len(data) == 0 {
		return domain.Image{}, domain.ErrImageNotFound
	}

	return domain.Image{Data: data, ContentType: DetectContentType(data)}, nil
}

// Save stores an uploaded image under a fresh key in folder and returns the key.
func Save(ctx context.Context, store storage.ImageStore, folder string, upload *domain.ImageUpload) (string, error) {
	key := storage.NewObjectKey(folder)
	if err := store.Put(ctx, key, DetectContentType(upload.Data), upload.Data); err != nil {
		return "", err
	}
	return key, nil
}

// Discard deletes stored images, ignoring empty keys. Used to roll back
// uploads after a failed write and to drop superseded images after a commit.
func Discard(ctx context.Context, store storage.ImageStore, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
