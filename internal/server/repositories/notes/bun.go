package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/uptrace/bun"
)

const newestFirst = "updated_at DESC, created_at DESC"

type BunRepository struct {
	db dbx.DBTX
}

func NewBunRepository(db dbx.DBTX) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Create(ctx context.Context, note *models.Note) error {
	if note.Links == nil {
		note.Links = []string{}
	}
	if _, err := r.db.NewInsert().Model(note).Exec(ctx); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *BunRepository) ListByVault(ctx context.Context, vaultID string) ([]*models.Note, error) {
	notes := make([]*models.Note, 0)
	err := r.db.NewSelect().
		Model(&notes).
		Where("vault_id = ?", vaultID).
		OrderExpr(newestFirst).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return normalize(notes), nil
}

func (r *BunRepository) ListByVaults(ctx context.Context, vaultIDs []string) ([]*models.Note, error) {
	notes := make([]*models.Note, 0)
	if len(vaultIDs) == 0 {
		return notes, nil
	}
	err := r.db.NewSelect().
		Model(&notes).
		Where("vault_id IN (?)", bun.In(vaultIDs)).
		OrderExpr(newestFirst).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return normalize(notes), nil
}

func (r *BunRepository) Get(ctx context.Context, vaultID, noteID string) (*models.Note, error) {
	note := &models.Note{}
	err := r.db.NewSelect().
		Model(note).
		Where("id = ?", noteID).
		Where("vault_id = ?", vaultID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if note.Links == nil {
		note.Links = []string{}
	}
	return note, nil
}

func (r *BunRepository) IDsByVault(ctx context.Context, vaultID string) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.NewSelect().
		Model((*models.Note)(nil)).
		Column("id").
		Where("vault_id = ?", vaultID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *BunRepository) Update(ctx context.Context, note *models.Note) error {
	if note.Links == nil {
		note.Links = []string{}
	}
	res, err := r.db.NewUpdate().
		Model(note).
		Column("title", "content", "links", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *BunRepository) Delete(ctx context.Context, vaultID, noteID string) error {
	res, err := r.db.NewDelete().
		Model((*models.Note)(nil)).
		Where("id = ?", noteID).
		Where("vault_id = ?", vaultID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func normalize(notes []*models.Note) []*models.Note {
	for _, n := range notes {
		if n.Links == nil {
			n.Links = []string{}
		}
	}
	return notes
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
