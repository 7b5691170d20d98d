package config

import (
	"CulinaShare-Backend/internal/api/handlers"
	"CulinaShare-Backend/internal/api/routes"
	"CulinaShare-Backend/internal/logging"
	"CulinaShare-Backend/internal/middleware"
	"CulinaShare-Backend/internal/utils"
	"CulinaShare-Backend/internal/utils/mailing"
	"CulinaShare-Backend/internal/utils/storage"
	"CulinaShare-Backend/pkg/ingredient"
	"CulinaShare-Backend/pkg/jwt"
	"CulinaShare-Backend/pkg/recipe"
	"CulinaShare-Backend/pkg/review"
	"CulinaShare-Backend/pkg/statistics"
	"CulinaShare-Backend/pkg/user"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(ctx context.Context, db *gorm.DB, cfg utils.Config) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:     "CulinaShare",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(recover.New())

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	limiterConfig := limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}
	if cfg.RedisAddr != "" {
		redisStorage, err := storage.NewRedisStorage(cfg.RedisAddr, "culinashare:limiter:")
		if err != nil {
			return nil, err
		}
		limiterConfig.Storage = redisStorage
		logging.Info().Str("addr", cfg.RedisAddr).Msg("rate limiter backed by redis")
	}
	app.Use(limiter.New(limiterConfig))

	// utils
	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	instructionRepository := ingredient.NewInstructionRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	statisticsRepository := statistics.NewStatisticsRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	userService := user.NewUserService(userRepository, jwtService, mailer, s3, cfg.AppURL)
	recipeService := recipe.NewRecipeService(recipeRepository, ingredientRepository, instructionRepository, s3)
	reviewService := review.NewReviewService(reviewRepository, recipeRepository)
	statisticsService := statistics.NewStatisticsService(statisticsRepository)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       handlers.NewUserHandler(userService),
		RecipeHandler:     handlers.NewRecipeHandler(recipeService),
		ReviewHandler:     handlers.NewReviewHandler(reviewService),
		StatisticsHandler: handlers.NewStatisticsHandler(statisticsService),
		Middleware:        middleware.NewMiddleware(cfg.AppURL),
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
