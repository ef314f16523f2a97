package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pantryline/backend/config"
	"github.com/pantryline/backend/internal/database"
	"github.com/pantryline/backend/internal/logging"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory holding SQL migration files")
	autoOnly := flag.Bool("auto", false, "run gorm auto-migration only, skip SQL files")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(false)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Probe connectivity with a plain driver connection first so a bad
	// DSN fails with a clear error before gorm gets involved.
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := probe.Ping(); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}
	_ = probe.Close()

	db, err := database.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	if !*autoOnly {
		if _, err := os.Stat(*migrationsDir); err == nil {
			if err := database.RunMigrations(db, *migrationsDir, logger); err != nil {
				log.Fatalf("migrations failed: %v", err)
			}
		}
	}

	fmt.Println("migrations applied successfully")
}
