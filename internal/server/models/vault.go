package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DefaultVaultTheme is used when a vault is created without a theme.
const DefaultVaultTheme = "violet"

type Vault struct {
	bun.BaseModel `bun:"table:vaults,alias:v"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	Theme     string    `bun:"theme,notnull"`
	OwnerID   string    `bun:"owner_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// VaultWithNotes is a vault together with its notes, newest first.
type VaultWithNotes struct {
	Vault *Vault
	Notes []*Note
}
