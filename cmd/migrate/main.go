package main

import (
	"context"
	"flag"
	"log"

	"sticky-notes-be/internal/config"
	"sticky-notes-be/internal/migrations"
	"sticky-notes-be/pkg/database"
)

func main() {
	command := flag.String("cmd", "up", "migration command: up, down or status")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Error: Failed to get sql.DB:", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	switch *command {
	case "up":
		err = migrations.Up(ctx, sqlDB)
	case "down":
		err = migrations.Down(ctx, sqlDB)
	case "status":
		err = migrations.Status(ctx, sqlDB)
	default:
		log.Fatalf("Error: unknown command %q", *command)
	}
	if err != nil {
		log.Fatalf("Error: migrate %s failed: %v", *command, err)
	}

	log.Printf("Migration %s completed", *command)
}
