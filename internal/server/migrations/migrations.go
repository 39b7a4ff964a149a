// Package migrations embeds the goose SQL migrations, one directory per
// supported database backend, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql mysql/*.sql
var Migrations embed.FS

var dialects = map[dbx.Driver]goose.Dialect{
	dbx.DriverPostgres: goose.DialectPostgres,
	dbx.DriverSQLite:   goose.DialectSQLite3,
	dbx.DriverMySQL:    goose.DialectMySQL,
}

// NewProvider returns a goose provider over the embedded migrations for driver.
func NewProvider(db *sql.DB, driver dbx.Driver) (*goose.Provider, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	fsys, err := fs.Sub(Migrations, string(driver))
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, fsys)
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, driver dbx.Driver) error {
	p, err := NewProvider(db, driver)
	if err != nil {
		return err
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Reset rolls every migration back and applies them again, leaving an
// empty schema.
func Reset(ctx context.Context, db *sql.DB, driver dbx.Driver) error {
	p, err := NewProvider(db, driver)
	if err != nil {
		return err
	}
	if _, err := p.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
