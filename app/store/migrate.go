package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Hussein-shsx3/Server-New-Project/app/store/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema migrations. It is idempotent;
// main calls it once after the database connection is verified.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
