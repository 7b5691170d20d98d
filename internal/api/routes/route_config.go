package routes

import (
	"CulinaShare-Backend/internal/api/handlers"
	"CulinaShare-Backend/internal/middleware"
	"CulinaShare-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	ReviewHandler     handlers.ReviewHandler
	StatisticsHandler handlers.StatisticsHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.User()
	c.Recipe()
	c.Review()
	c.Statistics()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuth(c.JWTService)

	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/forgot", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)

		user.Get("/me", auth, c.UserHandler.Me)
		user.Patch("/me", auth, c.UserHandler.UpdateMe)
		user.Post("/me/avatar", auth, c.UserHandler.UploadProfilePicture)
		user.Get("/me/saved", auth, c.RecipeHandler.GetSavedRecipes)

		user.Get("/search", c.UserHandler.SearchUsers)
		user.Get("/availability", c.UserHandler.CheckAvailability)

		user.Get("/:id", c.UserHandler.GetUserProfile)
		user.Get("/:id/stats", c.UserHandler.GetUserStats)
		user.Get("/:id/recipes", optional, c.RecipeHandler.GetRecipesByUser)
		user.Get("/:id/reviews", c.ReviewHandler.GetReviewsByUser)
		user.Post("/:id/follow", auth, c.UserHandler.ToggleFollow)
	}
}

func (c *Config) Recipe() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuth(c.JWTService)

	recipe := c.App.Group("/api/v1/recipes")
	{
		recipe.Get("", c.RecipeHandler.SearchRecipes)
		recipe.Get("/featured", c.RecipeHandler.GetFeaturedRecipes)
		recipe.Get("/popular", c.RecipeHandler.GetPopularRecipes)
		recipe.Get("/recent", c.RecipeHandler.GetRecentRecipes)
		recipe.Post("", auth, c.RecipeHandler.CreateRecipe)

		recipe.Get("/:id", optional, c.RecipeHandler.GetRecipe)
		recipe.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipe.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
		recipe.Post("/:id/like", auth, c.RecipeHandler.ToggleLike)
		recipe.Post("/:id/save", auth, c.RecipeHandler.ToggleSave)
		recipe.Post("/:id/image", auth, c.RecipeHandler.UploadRecipeImage)
		recipe.Put("/:id/ingredients/order", auth, c.RecipeHandler.ReorderIngredients)
		recipe.Put("/:id/instructions/order", auth, c.RecipeHandler.ReorderInstructions)
		recipe.Patch("/:id/ingredients/:itemId", auth, c.RecipeHandler.UpdateIngredient)
		recipe.Patch("/:id/instructions/:itemId", auth, c.RecipeHandler.UpdateInstruction)

		recipe.Get("/:id/reviews", optional, c.ReviewHandler.GetReviewsByRecipe)
		recipe.Get("/:id/reviews/me", auth, c.ReviewHandler.GetMyReviewForRecipe)
		recipe.Get("/:id/rating", optional, c.ReviewHandler.GetRatingSummary)
	}
}

func (c *Config) Review() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	review := c.App.Group("/api/v1/reviews", auth)
	{
		review.Post("", c.ReviewHandler.CreateReview)
		review.Patch("/:id", c.ReviewHandler.UpdateReview)
		review.Delete("/:id", c.ReviewHandler.DeleteReview)
	}
}

func (c *Config) Statistics() {
	c.App.Get("/api/v1/statistics", c.StatisticsHandler.GetStatistics)
}
