package notes

import (
	"context"

	"github.com/QuantumCastro/Vitrum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) error
	// ListByVault returns the vault's notes, most recently updated first.
	ListByVault(ctx context.Context, vaultID string) ([]*models.Note, error)
	// ListByVaults is ListByVault for several vaults at once.
	ListByVaults(ctx context.Context, vaultIDs []string) ([]*models.Note, error)
	Get(ctx context.Context, vaultID, noteID string) (*models.Note, error)
	IDsByVault(ctx context.Context, vaultID string) ([]string, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, vaultID, noteID string) error
}
