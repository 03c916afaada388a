package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|version]

import (
	"context"
	"log"
	"os"

	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "version":
		var version int64
		version, err = db.MigrationVersion(ctx, sqlDB)
		if err == nil {
			log.Printf("migration version: %d", version)
		}
	default:
		log.Printf("unknown command %q (want up, down or version)", command)
		os.Exit(2)
	}
	if err != nil {
		log.Printf("migrate %s failed: %v", command, err)
		os.Exit(1)
	}
}
