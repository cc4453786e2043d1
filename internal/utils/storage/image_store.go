package storage

import (
	"context"
	"errors"
	"fmt"

	"recipe-sharing-platform/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrObjectNotFound = errors.New("object not found")

const (
	FolderRecipes  = "recipes"
	FolderSteps    = "steps"
	FolderProfiles = "profiles"
)

type ImageStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

func NewObjectKey(folder string) string {
	return fmt.Sprintf("%s/%s", folder, uuid.NewString())
}

// NewImageStore picks the driver configured by STORAGE_DRIVER.
func NewImageStore(ctx context.Context, db *gorm.DB) (ImageStore, error) {
	switch driver := utils.GetConfig("STORAGE_DRIVER"); driver {
	case "s3":
		s3Store, err := NewAwsS3(ctx)
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	case "database":
		return NewDatabaseStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
