package app

import (
	"context"
	"fmt"

	"tennis_backend/database"
	"tennis_backend/internal/config"
	"tennis_backend/internal/email"
	"tennis_backend/internal/handlers"
	"tennis_backend/internal/logger"
	"tennis_backend/internal/middleware"
	"tennis_backend/internal/repositories"
	"tennis_backend/internal/routes"
	"tennis_backend/internal/services"
	"tennis_backend/internal/sms"
	"tennis_backend/internal/validator"
	"tennis_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService   services.AuthService
	UserService   services.UserService
	SearchService services.SearchService
	MatchService  services.MatchService

	UserRepository         repositories.UserRepository
	RefreshTokenRepository repositories.RefreshTokenRepository
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter, container := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleanupWorker := workers.NewVerificationCleanupWorker(
		container.UserRepository,
		container.RefreshTokenRepository,
		0,
	)
	go cleanupWorker.Run(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полный роутер; отдельной функцией, чтобы
// интеграционные тесты поднимали приложение без сетевого слушателя.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *ServiceContainer) {
	container := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(container)
	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, container
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *ServiceContainer {
	smsProvider := sms.NewProvider(cfg)
	emailProvider := email.NewProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	blockRepo := repositories.NewBlockRepository(gormDB)
	matchRepo := repositories.NewMatchRepository(gormDB)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, smsProvider, emailProvider, cfg)
	userService := services.NewUserService(userRepo, blockRepo)
	searchService := services.NewSearchService(userRepo)
	matchService := services.NewMatchService(gormDB, userRepo, matchRepo)

	return &ServiceContainer{
		AuthService:   authService,
		UserService:   userService,
		SearchService: searchService,
		MatchService:  matchService,

		UserRepository:         userRepo,
		RefreshTokenRepository: refreshTokenRepo,
	}
}

func initializeHandlers(container *ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:   handlers.NewUserHandler(baseHandler, container.UserService),
		SearchHandler: handlers.NewSearchHandler(baseHandler, container.SearchService),
		MatchHandler:  handlers.NewMatchHandler(baseHandler, container.MatchService, container.UserRepository),
		HealthHandler: handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
