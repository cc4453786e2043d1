package routes

import (
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/internal/api/handlers"
	"recipe-sharing-platform/internal/middleware"
	"recipe-sharing-platform/internal/session"
	"recipe-sharing-platform/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App             *fiber.App
	AuthHandler     handlers.AuthHandler
	RecipeHandler   handlers.RecipeHandler
	RatingHandler   handlers.RatingHandler
	FavoriteHandler handlers.FavoriteHandler
	CategoryHandler handlers.CategoryHandler
	AdminHandler    handlers.AdminHandler
	ProfileHandler  handlers.ProfileHandler
	ImageHandler    handlers.ImageHandler
	PageHandler     handlers.PageHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	SessionManager  *session.Manager
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Recipes()
	c.Ratings()
	c.Favorites()
	c.Categories()
	c.Admin()
	c.Profile()
	c.Images()
	c.Pages()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.AuthHandler.Register)
		auth.Post("/login", c.AuthHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.AuthHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	chef := []fiber.Handler{
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleChef),
	}

	// "/my" is registered ahead of "/:id"
	recipes.Get("/my", append(chef, c.RecipeHandler.GetMyRecipes)...)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.Middleware.OptionalAuth(c.JWTService), c.RecipeHandler.GetRecipe)
	recipes.Post("", append(chef, c.RecipeHandler.CreateRecipe)...)
	recipes.Put("/:id", append(chef, c.RecipeHandler.UpdateRecipe)...)
	recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Ratings() {
	ratings := c.App.Group("/api/ratings")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	ratings.Get("/recipe/:recipeId", c.RatingHandler.GetRecipeRatings)
	ratings.Get("/my", auth, c.RatingHandler.GetMyRatings)
	ratings.Get("/user/:recipeId", auth, c.RatingHandler.GetUserRatingForRecipe)
	ratings.Post("", auth, c.RatingHandler.CreateRating)
	ratings.Get("/:id", auth, c.RatingHandler.GetRating)
	ratings.Put("/:id", auth, c.RatingHandler.UpdateRating)
	ratings.Delete("/:id", auth, c.RatingHandler.DeleteRating)
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/favorites", c.Middleware.AuthMiddleware(c.JWTService))

	favorites.Get("", c.FavoriteHandler.GetFavorites)
	favorites.Get("/check/:recipeId", c.FavoriteHandler.CheckFavorite)
	favorites.Post("/:recipeId", c.FavoriteHandler.AddFavorite)
	favorites.Delete("/:recipeId", c.FavoriteHandler.RemoveFavorite)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/categories")
	admin := []fiber.Handler{
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleAdmin),
	}

	categories.Get("", c.CategoryHandler.GetCategories)
	categories.Get("/:id", c.CategoryHandler.GetCategory)
	categories.Post("", append(admin, c.CategoryHandler.CreateCategory)...)
	categories.Put("/:id", append(admin, c.CategoryHandler.UpdateCategory)...)
	categories.Delete("/:id", append(admin, c.CategoryHandler.DeleteCategory)...)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleAdmin),
	)

	admin.Get("/dashboard", c.AdminHandler.GetDashboard)

	// moderation
	admin.Get("/recipes/pending", c.AdminHandler.GetPendingRecipes)
	admin.Post("/recipes/:id/approve", c.AdminHandler.ApproveRecipe)
	admin.Post("/recipes/:id/reject", c.AdminHandler.RejectRecipe)
	admin.Delete("/recipes/:id", c.AdminHandler.DeleteRecipe)

	// users
	admin.Get("/users", c.AdminHandler.GetUsers)
	admin.Put("/users/:id/role", c.AdminHandler.UpdateUserRole)
	admin.Post("/users/:id/lockout", c.AdminHandler.ToggleLockout)
	admin.Delete("/users/:id", c.AdminHandler.DeleteUser)
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/profile", c.Middleware.AuthMiddleware(c.JWTService))

	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Put("", c.ProfileHandler.UpdateProfile)
	profile.Post("/image", c.ProfileHandler.UploadProfileImage)
	profile.Delete("/image", c.ProfileHandler.DeleteProfileImage)
	profile.Put("/password", c.ProfileHandler.ChangePassword)
}

func (c *Config) Images() {
	images := c.App.Group("/image")

	images.Get("/GetRecipeImage/:id", c.ImageHandler.GetRecipeImage)
	images.Get("/GetStepImage/:id", c.ImageHandler.GetStepImage)
	images.Get("/GetUserProfileImage/:id", c.ImageHandler.GetUserProfileImage)
}

// Pages is the cookie session surface. It calls the same services as the API.
func (c *Config) Pages() {
	pages := c.App.Group("/app")
	optional := c.Middleware.SessionAuth(c.SessionManager, false)
	required := c.Middleware.SessionAuth(c.SessionManager, true)

	pages.Post("/account/login", c.PageHandler.Login)
	pages.Post("/account/logout", c.PageHandler.Logout)

	pages.Get("/recipes/:id", optional, c.PageHandler.RecipeDetails)
	pages.Post("/recipes/:id/rate", required, c.PageHandler.SubmitRating)
	pages.Post("/recipes/:id/favorite", required, c.PageHandler.ToggleFavorite)

	admin := pages.Group("/admin", required, c.Middleware.RequireRoles(domain.RoleAdmin))
	admin.Post("/users/:id/role", c.PageHandler.UpdateUserRole)
	admin.Post("/users/:id/lockout", c.PageHandler.ToggleLockout)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
