package services

import (
	"context"
	"fmt"
	"time"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VaultService manages the vaults of a single owner. A vault owned by
// someone else is reported exactly like a missing one.
type VaultService struct {
	db          *bun.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewVaultService(db *bun.DB, m repomanager.RepositoryManager) *VaultService {
	return &VaultService{db: db, repomanager: m, now: utcNow}
}

// ListVaults returns every vault of the user with its notes.
func (s *VaultService) ListVaults(ctx context.Context, userID string) ([]*models.VaultWithNotes, error) {
	vaults, err := s.repomanager.Vaults(s.db).ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(vaults))
	for i, v := range vaults {
		ids[i] = v.ID
	}
	notes, err := s.repomanager.Notes(s.db).ListByVaults(ctx, ids)
	if err != nil {
		return nil, err
	}

	byVault := make(map[string][]*models.Note, len(vaults))
	for _, n := range notes {
		byVault[n.VaultID] = append(byVault[n.VaultID], n)
	}

	out := make([]*models.VaultWithNotes, 0, len(vaults))
	for _, v := range vaults {
		out = append(out, withNotes(v, byVault[v.ID]))
	}
	return out, nil
}

// CreateVault creates a vault (theme defaults to violet) with a starter
// note, atomically.
func (s *VaultService) CreateVault(ctx context.Context, userID, name string, theme *string) (*models.VaultWithNotes, error) {
	now := s.now()
	vault := &models.Vault{
		ID:        uuid.NewString(),
		Name:      name,
		Theme:     models.DefaultVaultTheme,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if theme != nil && *theme != "" {
		vault.Theme = *theme
	}

	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     NewVaultNoteTitle,
		Content:   NewVaultNoteContent,
		Links:     []string{},
		VaultID:   vault.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Vaults(tx).Create(ctx, vault); err != nil {
			return err
		}
		return s.repomanager.Notes(tx).Create(ctx, note)
	}); err != nil {
		return nil, fmt.Errorf("error creating vault: %w", err)
	}

	return withNotes(vault, []*models.Note{note}), nil
}

// GetVault returns one owned vault with its notes.
func (s *VaultService) GetVault(ctx context.Context, userID, vaultID string) (*models.VaultWithNotes, error) {
	vault, err := ownedVault(ctx, s.repomanager, s.db, userID, vaultID)
	if err != nil {
		return nil, err
	}
	return s.loadNotes(ctx, vault)
}

// UpdateVault changes name and/or theme; nil leaves a field untouched.
func (s *VaultService) UpdateVault(ctx context.Context, userID, vaultID string, name, theme *string) (*models.VaultWithNotes, error) {
	vault, err := ownedVault(ctx, s.repomanager, s.db, userID, vaultID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		vault.Name = *name
	}
	if theme != nil {
		vault.Theme = *theme
	}
	vault.UpdatedAt = s.now()

	if err := s.repomanager.Vaults(s.db).Update(ctx, vault); err != nil {
		return nil, err
	}
	return s.loadNotes(ctx, vault)
}

// EnsureDefaultVault provisions the default vault for a user that owns
// none. Safe to call concurrently and repeatedly.
func (s *VaultService) EnsureDefaultVault(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return bootstrapDefaultVault(ctx, s.repomanager, tx, userID, s.now())
	})
}

func (s *VaultService) loadNotes(ctx context.Context, vault *models.Vault) (*models.VaultWithNotes, error) {
	notes, err := s.repomanager.Notes(s.db).ListByVault(ctx, vault.ID)
	if err != nil {
		return nil, err
	}
	return withNotes(vault, notes), nil
}

// ownedVault loads a vault only if userID owns it.
func ownedVault(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, userID, vaultID string) (*models.Vault, error) {
	id, ok := parseID(vaultID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m.Vaults(db).GetOwned(ctx, id, userID)
}

func withNotes(v *models.Vault, notes []*models.Note) *models.VaultWithNotes {
	if notes == nil {
		notes = []*models.Note{}
	}
	return &models.VaultWithNotes{Vault: v, Notes: notes}
}
