package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sticky-notes-be/internal/bootstrap"
	"sticky-notes-be/internal/config"
	"sticky-notes-be/internal/migrations"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/server"
	"sticky-notes-be/internal/tracer"
	"sticky-notes-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer func() { _ = sysLogger.Sync() }()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Otel)
	defer func() { _ = shutdownTracer(context.Background()) }()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.Database.AutoMigrate {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Unable to get sql.DB: %v", err)
		}
		if err := migrations.Up(context.Background(), sqlDB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	defer container.Close()

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if container.ConsumerService != nil {
		go func() {
			if err := container.ConsumerService.Consume(ctx); err != nil {
				sysLogger.Error("CONSUMER", "Audit consumer stopped", map[string]interface{}{"error": err})
			}
		}()
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error("SERVER", "Server stopped", map[string]interface{}{"error": err})
	}
}
