// Command seed provisions the database schema and loads the default
// campaign catalog. Safe to re-run, existing rows are upserted.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/internal/infrastructure/database"
	"scamtrace/internal/infrastructure/database/repository"
	"scamtrace/pkg/logger"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDevelopment()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	repos := repository.New(db.Pool())

	defaults := models.DefaultCampaigns()
	for i := range defaults {
		c := &defaults[i]
		if err := repos.UpsertCampaign(ctx, c); err != nil {
			log.Fatal().Err(err).Str("campaign", c.Slug).Msg("failed to seed campaign")
		}
		log.Info().Str("campaign", c.Slug).Int("indicators", len(c.Indicators)).Msg("seeded")
	}

	log.Info().Int("campaigns", len(defaults)).Msg("seeding complete")
}
