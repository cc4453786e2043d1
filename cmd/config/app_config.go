package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"recipe-sharing-platform/internal/api/handlers"
	"recipe-sharing-platform/internal/api/routes"
	"recipe-sharing-platform/internal/middleware"
	"recipe-sharing-platform/internal/session"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/internal/utils/mailing"
	"recipe-sharing-platform/internal/utils/storage"
	"recipe-sharing-platform/pkg/admin"
	"recipe-sharing-platform/pkg/category"
	"recipe-sharing-platform/pkg/favorite"
	"recipe-sharing-platform/pkg/image"
	"recipe-sharing-platform/pkg/jwt"
	"recipe-sharing-platform/pkg/moderation"
	"recipe-sharing-platform/pkg/profile"
	"recipe-sharing-platform/pkg/rating"
	"recipe-sharing-platform/pkg/recipe"
	"recipe-sharing-platform/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bodyLimit leaves room for a main image and one image per step.
const bodyLimit = 50 * 1024 * 1024

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	if err := utils.RequireSecrets(); err != nil {
		return nil, err
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit:         bodyLimit,
		EnablePrintRoutes: utils.GetConfig("APP_ENV") != "production",
	})
	middlewares := middleware.NewMiddleware()

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("DB_TIMEZONE"),
		Output:     file,
	}))
	app.Use(middlewares.RequestLogger(log))
	app.Use(middlewares.Metrics())

	maxRequests, _ := strconv.Atoi(utils.GetConfig("RATE_LIMIT_MAX"))
	app.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: 1 * time.Second,
	}))

	// utils
	store, err := storage.NewImageStore(context.Background(), db)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	sessions := session.NewManager(utils.GetConfig("SESSION_SECRET"), utils.GetConfig("APP_ENV") == "production")

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	adminRepository := admin.NewAdminRepository(db)
	imageRepository := image.NewImageRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, store)
	moderationService := moderation.NewModerationService(recipeRepository, mailer, utils.GetConfig("APP_URL"))
	ratingService := rating.NewRatingService(ratingRepository)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, recipeRepository)
	categoryService := category.NewCategoryService(categoryRepository, recipeRepository)
	adminService := admin.NewAdminService(
		adminRepository,
		userRepository,
		recipeRepository,
		categoryRepository,
		ratingRepository,
		favoriteRepository,
		store,
	)
	profileService := profile.NewProfileService(userRepository, recipeRepository, ratingRepository, favoriteRepository, store)
	imageService := image.NewImageService(imageRepository, store)

	// Handler
	authHandler := handlers.NewAuthHandler(userService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(adminService, moderationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	imageHandler := handlers.NewImageHandler(imageService)
	pageHandler := handlers.NewPageHandler(sessions, userService, recipeService, ratingService, favoriteService, adminService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		AuthHandler:     authHandler,
		RecipeHandler:   recipeHandler,
		RatingHandler:   ratingHandler,
		FavoriteHandler: favoriteHandler,
		CategoryHandler: categoryHandler,
		AdminHandler:    adminHandler,
		ProfileHandler:  profileHandler,
		ImageHandler:    imageHandler,
		PageHandler:     pageHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		SessionManager:  sessions,
	}
	routesConfig.Setup()
	return app, nil
}
