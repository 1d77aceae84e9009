package main

import (
	"flag"
	"fmt"
	"os"

	"mining_webapp/internal/db"
	"mining_webapp/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), false)
	_ = godotenv.Load()

	var (
		path     = flag.String("path", "migrations", "path to migration files")
		rollback = flag.Bool("rollback", false, "roll back the most recent migration")
		version  = flag.Bool("version", false, "print current schema version")
	)
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	switch {
	case *version:
		v, dirty, err := db.MigrationVersion(databaseURL, *path)
		if err != nil {
			logger.Fatal("version check failed", "error", err)
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
	case *rollback:
		if err := db.RollbackMigration(databaseURL, *path); err != nil {
			logger.Fatal("rollback failed", "error", err)
		}
		logger.Info("rolled back one migration")
	default:
		if err := db.RunMigrations(databaseURL, *path); err != nil {
			logger.Fatal("migrations failed", "error", err)
		}
		logger.Info("migrations applied")
	}
}
