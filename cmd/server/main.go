package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/craftfolio/backend/internal/router"
	"github.com/craftfolio/backend/pkg/config"
	"github.com/craftfolio/backend/pkg/firebase"
	"github.com/craftfolio/backend/pkg/logger"
	"github.com/craftfolio/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	log := logger.Init(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase is optional; google/apple sign-in is disabled without it
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, log); err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
