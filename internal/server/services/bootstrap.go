package services

import (
	"context"
	"fmt"
	"time"

	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Seed content for new vaults. Values prefixed with "i18n:" are keys the
// client resolves to localized text.
const (
	DefaultVaultNameKey      = "i18n:defaultVault.name"
	WelcomeNoteTitleKey      = "i18n:defaultNotes.welcome.title"
	WelcomeNoteContentKey    = "i18n:defaultNotes.welcome.content"
	QuickstartNoteTitleKey   = "i18n:defaultNotes.quickstart.title"
	QuickstartNoteContentKey = "i18n:defaultNotes.quickstart.content"
	NewVaultNoteTitle        = "Inicio"
	NewVaultNoteContent      = "Bienvenido a tu nueva bóveda."
)

// bootstrapDefaultVault gives a user with no vaults a default vault holding
// two notes that link to each other. It must run inside a transaction: the
// user row update takes the lock that keeps concurrent first logins from
// creating two vaults.
func bootstrapDefaultVault(ctx context.Context, m repomanager.RepositoryManager, tx dbx.DBTX, userID string, now time.Time) error {
	if err := m.Users(tx).MarkBootstrapCheck(ctx, userID, now); err != nil {
		return fmt.Errorf("lock user: %w", err)
	}

	vaultRepo := m.Vaults(tx)
	n, err := vaultRepo.CountByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	vault := &models.Vault{
		ID:        uuid.NewString(),
		Name:      DefaultVaultNameKey,
		Theme:     models.DefaultVaultTheme,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := vaultRepo.Create(ctx, vault); err != nil {
		return err
	}

	welcomeID, quickstartID := uuid.NewString(), uuid.NewString()
	// welcome is a tick newer so it lists first
	welcomeAt := now.Add(time.Microsecond)
	seed := []*models.Note{
		{
			ID:        welcomeID,
			Title:     WelcomeNoteTitleKey,
			Content:   WelcomeNoteContentKey,
			Links:     []string{quickstartID},
			VaultID:   vault.ID,
			CreatedAt: welcomeAt,
			UpdatedAt: welcomeAt,
		},
		{
			ID:        quickstartID,
			Title:     QuickstartNoteTitleKey,
			Content:   QuickstartNoteContentKey,
			Links:     []string{welcomeID},
			VaultID:   vault.ID,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	noteRepo := m.Notes(tx)
	for _, note := range seed {
		if err := noteRepo.Create(ctx, note); err != nil {
			return err
		}
	}
	return nil
}
