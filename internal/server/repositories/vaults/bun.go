package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
)

type BunRepository struct {
	db dbx.DBTX
}

func NewBunRepository(db dbx.DBTX) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Create(ctx context.Context, vault *models.Vault) error {
	if _, err := r.db.NewInsert().Model(vault).Exec(ctx); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *BunRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Vault, error) {
	vaults := make([]*models.Vault, 0)
	err := r.db.NewSelect().
		Model(&vaults).
		Where("owner_id = ?", ownerID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return vaults, nil
}

func (r *BunRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.Vault, error) {
	vault := &models.Vault{}
	err := r.db.NewSelect().
		Model(vault).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return vault, nil
}

func (r *BunRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	n, err := r.db.NewSelect().
		Model((*models.Vault)(nil)).
		Where("owner_id = ?", ownerID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *BunRepository) Update(ctx context.Context, vault *models.Vault) error {
	res, err := r.db.NewUpdate().
		Model(vault).
		Column("name", "theme", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *BunRepository) Delete(ctx context.Context, id string) error {
	// Notes go first so the result does not depend on the backend enforcing
	// the foreign key cascade.
	if _, err := r.db.NewDelete().
		Model((*models.Note)(nil)).
		Where("vault_id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	res, err := r.db.NewDelete().
		Model((*models.Vault)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
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
