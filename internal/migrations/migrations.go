// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var Migrations embed.FS

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, ".")
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, ".")
}
