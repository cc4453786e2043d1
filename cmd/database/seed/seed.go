// Package seed inserts the default accounts and categories. Every step skips
// rows that already exist, so running it twice is harmless.
package seed

import (
	"errors"
	"fmt"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type defaultUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

var defaultUsers = []defaultUser{
	{"admin", "admin@recipesharingplatform.com", "Admin123!", "Admin", "User", domain.RoleAdmin},
	{"chef", "chef@recipesharingplatform.com", "Chef123!", "Gordon", "Chef", domain.RoleChef},
	{"user", "user@recipesharingplatform.com", "User123!", "John", "Doe", domain.RoleUser},
}

var defaultCategories = []entities.Category{
	{Name: "Appetizers", Description: "Start your meal with these delicious appetizers"},
	{Name: "Main Courses", Description: "Hearty main dishes for every occasion"},
	{Name: "Desserts", Description: "Sweet treats to end your meal"},
	{Name: "Beverages", Description: "Refreshing drinks and cocktails"},
	{Name: "Breakfast", Description: "Start your day right with these breakfast recipes"},
	{Name: "Vegetarian", Description: "Delicious meat-free options"},
	{Name: "Quick & Easy", Description: "Recipes ready in 30 minutes or less"},
}

func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedCategories(db); err != nil {
		return err
	}

	zap.L().Info("Database seeding complete")
	return nil
}

func seedUsers(db *gorm.DB) error {
	for _, u := range defaultUsers {
		var existing entities.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		user := entities.User{
			Username:  u.Username,
			Email:     u.Email,
			Password:  hashed,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create %s user: %w", u.Role, err)
		}
	}
	return nil
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]entities.Category, len(defaultCategories))
	copy(categories, defaultCategories)
	return db.Create(&categories).Error
}
