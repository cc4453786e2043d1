package storage

import (
	"context"
	"errors"

	"recipe-sharing-platform/entities"

	"gorm.io/gorm"
)

type databaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) ImageStore {
	return &databaseStore{db: db}
}

func (s *databaseStore) Put(ctx context.Context, key string, contentType string, data []byte) error {
	return s.db.WithContext(ctx).Save(&entities.ImageBlob{
		ObjectKey:   key,
		ContentType: contentType,
		Data:        data,
	}).Error
}

func (s *databaseStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob entities.ImageBlob
	if err := s.db.WithContext(ctx).Where("object_key = ?", key).First(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return blob.Data, nil
}

func (s *databaseStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("object_key = ?", key).Delete(&entities.ImageBlob{}).Error
}
