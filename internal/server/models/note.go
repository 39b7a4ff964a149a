package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Note belongs to exactly one vault. Links holds ids of other notes in the
// same vault, stored as a JSON array.
type Note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID        string    `bun:"id,pk"`
	Title     string    `bun:"title,notnull"`
	Content   string    `bun:"content,notnull"`
	Links     []string  `bun:"links,notnull"`
	VaultID   string    `bun:"vault_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
