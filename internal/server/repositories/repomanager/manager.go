// Package repomanager vends repository implementations bound to a query
// handle (the pool or a transaction) and applies schema migrations.
package repomanager

import (
	"context"

	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/notes"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/users"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/vaults"
	"github.com/uptrace/bun"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *bun.DB) error
	ResetSchema(ctx context.Context, db *bun.DB) error
	Users(db dbx.DBTX) users.Repository
	Vaults(db dbx.DBTX) vaults.Repository
	Notes(db dbx.DBTX) notes.Repository
}
