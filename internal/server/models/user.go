// Package models holds the persistent entities shared by repositories and
// services.
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an account that owns vaults. BootstrapCheckedAt records the last
// time the default-vault check ran; updating it serializes that check.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                 string     `bun:"id,pk"`
	Email              string     `bun:"email,notnull"`
	HashedPassword     string     `bun:"hashed_password,notnull"`
	DisplayName        *string    `bun:"display_name"`
	BootstrapCheckedAt *time.Time `bun:"bootstrap_checked_at"`
	CreatedAt          time.Time  `bun:"created_at,notnull"`
	UpdatedAt          time.Time  `bun:"updated_at,notnull"`
}
