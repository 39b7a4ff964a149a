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

// NoteFields carries optional note attributes. A nil field is left as is on
// update and defaults to empty on create; a non-nil Links, even empty,
// replaces the stored list.
type NoteFields struct {
	Title   *string
	Content *string
	Links   *[]string
}

// NoteService manages notes inside vaults owned by the caller.
type NoteService struct {
	db          *bun.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewNoteService(db *bun.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m, now: utcNow}
}

// ListNotes returns the notes of an owned vault, most recently updated first.
func (s *NoteService) ListNotes(ctx context.Context, userID, vaultID string) ([]*models.Note, error) {
	vault, err := ownedVault(ctx, s.repomanager, s.db, userID, vaultID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).ListByVault(ctx, vault.ID)
}

// CreateNote stores a note and then its links, filtered against the notes
// the vault holds at that point.
func (s *NoteService) CreateNote(ctx context.Context, userID, vaultID string, in NoteFields) (*models.Note, error) {
	var note *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		vault, err := ownedVault(ctx, s.repomanager, tx, userID, vaultID)
		if err != nil {
			return err
		}

		now := s.now()
		note = &models.Note{
			ID:        uuid.NewString(),
			Title:     deref(in.Title),
			Content:   deref(in.Content),
			Links:     []string{},
			VaultID:   vault.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		repo := s.repomanager.Notes(tx)
		if err := repo.Create(ctx, note); err != nil {
			return err
		}
		if in.Links == nil || len(*in.Links) == 0 {
			return nil
		}

		allowed, err := repo.IDsByVault(ctx, vault.ID)
		if err != nil {
			return err
		}
		note.Links = SanitizeLinks(*in.Links, allowed, note.ID)
		return repo.Update(ctx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

// UpdateNote applies the non-nil fields of in to an existing note.
func (s *NoteService) UpdateNote(ctx context.Context, userID, vaultID, noteID string, in NoteFields) (*models.Note, error) {
	var note *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		vault, err := ownedVault(ctx, s.repomanager, tx, userID, vaultID)
		if err != nil {
			return err
		}
		id, ok := parseID(noteID)
		if !ok {
			return common.ErrorNotFound
		}

		repo := s.repomanager.Notes(tx)
		note, err = repo.Get(ctx, vault.ID, id)
		if err != nil {
			return err
		}

		if in.Title != nil {
			note.Title = *in.Title
		}
		if in.Content != nil {
			note.Content = *in.Content
		}
		if in.Links != nil {
			allowed, err := repo.IDsByVault(ctx, vault.ID)
			if err != nil {
				return err
			}
			note.Links = SanitizeLinks(*in.Links, allowed, note.ID)
		}
		note.UpdatedAt = s.now()

		return repo.Update(ctx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note. Links pointing at it from other notes are left
// in place.
func (s *NoteService) DeleteNote(ctx context.Context, userID, vaultID, noteID string) error {
	vault, err := ownedVault(ctx, s.repomanager, s.db, userID, vaultID)
	if err != nil {
		return err
	}
	id, ok := parseID(noteID)
	if !ok {
		return common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).Delete(ctx, vault.ID, id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
