package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/migrations"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/notes"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/users"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/vaults"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// BunRepositoryManager vends bun-backed repositories for whichever dialect
// the database was opened with.
type BunRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *BunRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewBunRepository(db)
}

// Vaults returns a vaults.Repository bound to the provided DBTX.
func (m *BunRepositoryManager) Vaults(db dbx.DBTX) vaults.Repository {
	return vaults.NewBunRepository(db)
}

// Notes returns a notes.Repository bound to the provided DBTX.
func (m *BunRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewBunRepository(db)
}

// Seams for tests.
var (
	migrateUp    = migrations.Up
	migrateReset = migrations.Reset
)

// RunMigrations applies the embedded migrations for the database dialect.
func (m *BunRepositoryManager) RunMigrations(ctx context.Context, db *bun.DB) error {
	return m.migrate(ctx, db, migrateUp)
}

// ResetSchema drops every table and migrates again from scratch.
func (m *BunRepositoryManager) ResetSchema(ctx context.Context, db *bun.DB) error {
	return m.migrate(ctx, db, migrateReset)
}

func (m *BunRepositoryManager) migrate(ctx context.Context, db *bun.DB, run func(context.Context, *sql.DB, dbx.Driver) error) error {
	driver, err := DriverFor(db)
	if err != nil {
		return err
	}
	return run(ctx, db.DB, driver)
}

// DriverFor maps a bun dialect back to the backend it talks to.
func DriverFor(db *bun.DB) (dbx.Driver, error) {
	switch db.Dialect().Name() {
	case dialect.PG:
		return dbx.DriverPostgres, nil
	case dialect.SQLite:
		return dbx.DriverSQLite, nil
	case dialect.MySQL:
		return dbx.DriverMySQL, nil
	default:
		return "", fmt.Errorf("unsupported dialect %s", db.Dialect().Name())
	}
}

// NewBunRepositoryManager constructs a bun-backed RepositoryManager.
func NewBunRepositoryManager() RepositoryManager {
	return &BunRepositoryManager{}
}
