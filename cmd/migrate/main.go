package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-content/internal/config"
	"ms-content/internal/database/migrations"
	"ms-content/internal/logger"
)

// Standalone migration tool for environments where AUTO_MIGRATE is off.
//
//	go run ./cmd/migrate -direction up
//	go run ./cmd/migrate -direction down
func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	if cfg.Database.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
	}
	defer sqldb.Close()

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	runner := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: cfg.Database.MigrationsDir,
	})
	defer runner.Close()

	switch *direction {
	case "up":
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration up failed: %v", err))
		}
	case "down":
		if err := runner.MigrateDown(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration down failed: %v", err))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown direction %q, want up or down\n", *direction)
		os.Exit(2)
	}

	version, dirty, err := runner.Version()
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Could not read schema version: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Schema at version %d (dirty=%t)", version, dirty))
}
