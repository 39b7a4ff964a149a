package services

import (
	"context"
	"sync"
	"testing"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVault(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)

	tests := []struct {
		name      string
		theme     *string
		wantTheme string
	}{
		{name: "default theme", theme: nil, wantTheme: "violet"},
		{name: "empty theme", theme: ptr(""), wantTheme: "violet"},
		{name: "explicit theme", theme: ptr("teal"), wantTheme: "teal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := e.vaults.CreateVault(ctx, u.ID, "Work", tt.theme)
			require.NoError(t, err)
			assert.Equal(t, "Work", v.Vault.Name)
			assert.Equal(t, tt.wantTheme, v.Vault.Theme)
			assert.Equal(t, u.ID, v.Vault.OwnerID)
			require.Len(t, v.Notes, 1)
			assert.Equal(t, NewVaultNoteTitle, v.Notes[0].Title)
			assert.Equal(t, NewVaultNoteContent, v.Notes[0].Content)
			assert.Empty(t, v.Notes[0].Links)

			got, err := e.vaults.GetVault(ctx, u.ID, v.Vault.ID)
			require.NoError(t, err)
			require.Len(t, got.Notes, 1)
		})
	}
}

func TestGetVault_OwnershipAndBadIDs(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice, bob := e.insertBareUser(t), e.insertBareUser(t)

	v, err := e.vaults.CreateVault(ctx, alice.ID, "private", nil)
	require.NoError(t, err)

	_, err = e.vaults.GetVault(ctx, bob.ID, v.Vault.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.vaults.GetVault(ctx, alice.ID, uuid.NewString())
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.vaults.GetVault(ctx, alice.ID, "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.vaults.UpdateVault(ctx, bob.ID, v.Vault.ID, ptr("stolen"), nil)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateVault_Partial(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)

	v, err := e.vaults.CreateVault(ctx, u.ID, "old", ptr("teal"))
	require.NoError(t, err)

	got, err := e.vaults.UpdateVault(ctx, u.ID, v.Vault.ID, ptr("new"), nil)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Vault.Name)
	assert.Equal(t, "teal", got.Vault.Theme)
	assert.True(t, got.Vault.UpdatedAt.After(v.Vault.UpdatedAt))
	assert.Len(t, got.Notes, 1)

	got, err = e.vaults.UpdateVault(ctx, u.ID, v.Vault.ID, nil, ptr("rose"))
	require.NoError(t, err)
	assert.Equal(t, "new", got.Vault.Name)
	assert.Equal(t, "rose", got.Vault.Theme)
}

func TestListVaults_OnlyOwnWithNotes(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice, bob := e.insertBareUser(t), e.insertBareUser(t)

	first, err := e.vaults.CreateVault(ctx, alice.ID, "first", nil)
	require.NoError(t, err)
	second, err := e.vaults.CreateVault(ctx, alice.ID, "second", nil)
	require.NoError(t, err)
	_, err = e.vaults.CreateVault(ctx, bob.ID, "bob", nil)
	require.NoError(t, err)

	_, err = e.notes.CreateNote(ctx, alice.ID, second.Vault.ID, NoteFields{Title: ptr("extra")})
	require.NoError(t, err)

	list, err := e.vaults.ListVaults(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.Vault.ID, list[0].Vault.ID)
	assert.Len(t, list[0].Notes, 1)
	assert.Equal(t, second.Vault.ID, list[1].Vault.ID)
	require.Len(t, list[1].Notes, 2)
	assert.Equal(t, "extra", list[1].Notes[0].Title)

	empty, err := e.vaults.ListVaults(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestEnsureDefaultVault_Idempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)

	require.NoError(t, e.vaults.EnsureDefaultVault(ctx, u.ID))
	require.NoError(t, e.vaults.EnsureDefaultVault(ctx, u.ID))

	list, err := e.vaults.ListVaults(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, DefaultVaultNameKey, list[0].Vault.Name)
	assert.Len(t, list[0].Notes, 2)
}

func TestEnsureDefaultVault_SkipsUserWithVault(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)

	_, err := e.vaults.CreateVault(ctx, u.ID, "mine", nil)
	require.NoError(t, err)
	require.NoError(t, e.vaults.EnsureDefaultVault(ctx, u.ID))

	list, err := e.vaults.ListVaults(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Vault.Name)
}

func TestEnsureDefaultVault_Concurrent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- e.vaults.EnsureDefaultVault(ctx, u.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := e.rm.Vaults(e.db).CountByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEnsureDefaultVault_UnknownUser(t *testing.T) {
	e := newTestEnv(t)

	err := e.vaults.EnsureDefaultVault(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, common.ErrorNotFound)
}
