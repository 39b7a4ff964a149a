package vaults

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/server/dbtest"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func seedUser(t *testing.T, db *bun.DB) string {
	t.Helper()
	now := time.Now().UTC()
	u := &models.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com", HashedPassword: "h", CreatedAt: now, UpdatedAt: now}
	_, err := db.NewInsert().Model(u).Exec(context.Background())
	require.NoError(t, err)
	return u.ID
}

func newVault(ownerID, name string, created time.Time) *models.Vault {
	return &models.Vault{
		ID:        uuid.NewString(),
		Name:      name,
		Theme:     models.DefaultVaultTheme,
		OwnerID:   ownerID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestCreate_List_Count(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := NewBunRepository(db)
	ctx := context.Background()

	alice, bob := seedUser(t, db), seedUser(t, db)
	base := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, repo.Create(ctx, newVault(alice, "second", base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, newVault(alice, "first", base)))
	require.NoError(t, repo.Create(ctx, newVault(bob, "bob's", base)))

	list, err := repo.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)

	n, err := repo.CountByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	empty, err := repo.ListByOwner(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetOwned(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := NewBunRepository(db)
	ctx := context.Background()

	alice, bob := seedUser(t, db), seedUser(t, db)
	v := newVault(alice, "mine", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetOwned(ctx, v.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Name)
	assert.Equal(t, alice, got.OwnerID)

	_, err = repo.GetOwned(ctx, v.ID, bob)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := NewBunRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db)
	v := newVault(alice, "old", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, v))

	v.Name = "new"
	v.Theme = "teal"
	v.UpdatedAt = v.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, v))

	got, err := repo.GetOwned(ctx, v.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "teal", got.Theme)

	missing := newVault(alice, "x", time.Now().UTC())
	require.ErrorIs(t, repo.Update(ctx, missing), common.ErrorNotFound)
}

func TestDelete_CascadesToNotes(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := NewBunRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db)
	v := newVault(alice, "doomed", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, v))

	now := time.Now().UTC()
	_, err := db.NewInsert().Model(&models.Note{
		ID: uuid.NewString(), Title: "t", Links: []string{}, VaultID: v.ID, CreatedAt: now, UpdatedAt: now,
	}).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, v.ID))

	n, err := db.NewSelect().Model((*models.Note)(nil)).Where("vault_id = ?", v.ID).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.ErrorIs(t, repo.Delete(ctx, v.ID), common.ErrorNotFound)
}

func TestDeleteOwner_RejectedWhileVaultsExist(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := NewBunRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db)
	require.NoError(t, repo.Create(ctx, newVault(alice, "kept", time.Now().UTC())))

	_, err := db.NewDelete().Model((*models.User)(nil)).Where("id = ?", alice).Exec(ctx)
	require.Error(t, err)

	n, err := repo.CountByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCountByOwner_DBError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()
	repo := NewBunRepository(dbx.NewBunDB(sqlDB, dbx.DriverPostgres))

	mock.ExpectQuery(`(?s)^SELECT count\(\*\) FROM "vaults"`).WillReturnError(errors.New("db down"))

	_, err = repo.CountByOwner(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
