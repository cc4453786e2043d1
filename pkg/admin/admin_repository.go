package admin

import (
	"context"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		GetUsers(ctx context.Context, query domain.UserQuery) ([]*entities.User, int64, error)
		GetRecipeCounts(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int64, error)
		UpdateUserRole(ctx context.Context, userID uuid.UUID, role string) error
		SetDisabled(ctx context.Context, userID uuid.UUID, disabled bool) error
		DeleteUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetUsers(ctx context.Context, query domain.UserQuery) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64

	db := r.db.WithContext(ctx).Model(&entities.User{})
	if search := strings.TrimSpace(query.Search); search != "" {
		like := utils.ContainsPattern(search)
		db = db.Where(
			"(LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(username) LIKE ? ESCAPE '\\')",
			like, like, like, like,
		)
	}
	if query.Role != "" {
		db = db.Where("role = ?", query.Role)
	}

	db = db.Session(&gorm.Session{})
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Order("last_name asc").
		Order("first_name asc").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *adminRepository) GetRecipeCounts(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		UserID uuid.UUID
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Select("user_id, COUNT(*) AS total").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

func (r *adminRepository) UpdateUserRole(ctx context.Context, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).Update("role", role).Error
}

func (r *adminRepository) SetDisabled(ctx context.Context, userID uuid.UUID, disabled bool) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).Update("is_disabled", disabled).Error
}

// DeleteUser removes the user's recipes with everything hanging off them, the
// ratings and favorites the user left on other recipes, and finally the user,
// in one transaction. It returns the image keys that are no longer referenced.
func (r *adminRepository) DeleteUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var imageKeys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs []uuid.UUID
		if err := tx.Model(&entities.Recipe{}).Where("user_id = ?", userID).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}

		keys, err := recipe.DeleteRecipeTree(tx, recipeIDs)
		if err != nil {
			return err
		}
		imageKeys = keys

		if err := tx.Where("user_id = ?", userID).Delete(&entities.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.UserFavorite{}).Error; err != nil {
			return err
		}

		var profileKeys []string
		if err := tx.Model(&entities.User{}).
			Where("id = ? AND profile_image_key <> ''", userID).
			Pluck("profile_image_key", &profileKeys).Error; err != nil {
			return err
		}
		imageKeys = append(imageKeys, profileKeys...)

		return tx.Where("id = ?", userID).Delete(&entities.User{}).Error
	})
	if err != nil {
		return nil, err
	}
	return imageKeys, nil
}
