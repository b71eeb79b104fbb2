package main

import (
	"os"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/auth"
	"github.com/casetrack-dev/casetrack/internal/router"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("No .env file found, using process environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize JWT secret")
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	r := router.NewRouter(logger)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		logger.Info().Msg("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
