package router

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/craftfolio/backend/internal/handlers"
	"github.com/craftfolio/backend/internal/middleware"
	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"github.com/craftfolio/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error envelope
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = httpErrorHandler
}

// httpErrorHandler renders every error as {success:false, message}
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"success": false, "message": message})
}

// SetupRoutes configures all application routes and injects dependencies.
// The Firebase client may be nil; the firebase-login route is only mounted
// when it is configured.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, logger *zap.Logger) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Experience{},
		&models.Education{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	logger.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	experienceRepo := repositories.NewPostgresExperienceRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	projectRepo := repositories.NewMongoProjectRepository(mgClient.Database("craftfolio"))

	// --- Services ---
	followService := services.NewFollowService(pgdb, userRepo, followRepo, notificationRepo, logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	if firebaseAuthClient != nil {
		// firebase-login needs a verified ID token before the handler runs
		authGroup.Use(middlewareForFirebaseLogin(firebaseAuthClient))
	}
	logger.Info("auth routes configured")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	// Account setup and profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	// Experience and education routes
	experienceHandler := handlers.NewExperienceHandler(experienceRepo)
	experienceHandler.RegisterExperienceRoutes(api)

	// Portfolio project routes
	projectHandler := handlers.NewProjectHandler(projectRepo)
	projectHandler.RegisterProjectRoutes(api)

	// Follow routes
	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info("all routes configured")
	return nil
}

// middlewareForFirebaseLogin scopes Firebase verification to the
// firebase-login route and passes everything else through
func middlewareForFirebaseLogin(client *auth.Client) echo.MiddlewareFunc {
	verify := middleware.FirebaseAuthMiddleware(client)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/api/v1/auth/firebase-login" {
				return verify(next)(c)
			}
			return next(c)
		}
	}
}
