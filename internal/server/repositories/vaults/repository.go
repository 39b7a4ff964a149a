package vaults

import (
	"context"

	"github.com/QuantumCastro/Vitrum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, vault *models.Vault) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Vault, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Vault, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, vault *models.Vault) error
	// Delete removes the vault together with all of its notes.
	Delete(ctx context.Context, id string) error
}
