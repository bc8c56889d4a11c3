// Command migrate brings the database schema to the latest version and
// exits. Useful in CI and as a release step; the application also migrates
// on startup, so running this is never required for correctness.
package main

import (
	"context"
	"os"

	"github.com/JaedenTYY/justrsvp/internal/config"
	"github.com/JaedenTYY/justrsvp/internal/database"
	"github.com/JaedenTYY/justrsvp/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	log, _, err := logger.New(cfg)
	if err != nil {
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), log, cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed.")
	}
}
