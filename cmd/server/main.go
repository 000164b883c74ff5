package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/trailhead-app/trailhead/internal/config"
	"github.com/trailhead-app/trailhead/internal/handler"
	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/server"
	"github.com/trailhead-app/trailhead/internal/service"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/internal/workers"
	"github.com/trailhead-app/trailhead/migrations"
)

// resetTokenPurgeInterval is how often the background janitor clears
// expired password-reset tokens.
const resetTokenPurgeInterval = time.Hour

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is fine; the environment may be set elsewhere
	_ = godotenv.Load()

	log := logger.NewLogger("trailhead-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("env", cfg.App.Env).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, cfg, log)
	services := service.NewServices(storages, cfg, service.NewLogMailer(log), log)
	handlers := handler.NewHandlers(services, storages, cfg, log)

	janitor := workers.NewResetTokenJanitor(storages.UserRepository, resetTokenPurgeInterval, log)
	defer janitor.Stop()
	workers.NewWorkers(janitor).Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
