package database

import (
	"context"
	"embed"
	"fmt"
	"path"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/mysql/*.sql
var migrations embed.FS

// Migrate applies the embedded schema for the connection's dialect.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect := db.DriverName()
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, path.Join("migrations", dialect)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
