package services

import (
	"context"
	"strings"
	"testing"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVaultFor(t *testing.T, e *testEnv, userID string) *models.VaultWithNotes {
	t.Helper()
	v, err := e.vaults.CreateVault(context.Background(), userID, "notes", nil)
	require.NoError(t, err)
	return v
}

func TestCreateNote_Defaults(t *testing.T) {
	e := newTestEnv(t)
	u := e.insertBareUser(t)
	v := newVaultFor(t, e, u.ID)

	n, err := e.notes.CreateNote(context.Background(), u.ID, v.Vault.ID, NoteFields{})
	require.NoError(t, err)
	assert.Equal(t, "", n.Title)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, []string{}, n.Links)
	assert.Equal(t, v.Vault.ID, n.VaultID)
}

func TestCreateNote_SanitizesLinks(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)
	v := newVaultFor(t, e, u.ID)
	other := newVaultFor(t, e, u.ID)

	b, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("B")})
	require.NoError(t, err)
	c, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("C")})
	require.NoError(t, err)
	foreign, err := e.notes.CreateNote(ctx, u.ID, other.Vault.ID, NoteFields{Title: ptr("elsewhere")})
	require.NoError(t, err)

	links := []string{b.ID, c.ID, strings.ToUpper(b.ID), foreign.ID, uuid.NewString(), "garbage"}
	a, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("A"), Links: &links})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, c.ID}, a.Links)

	stored, err := e.rm.Notes(e.db).Get(ctx, v.Vault.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, c.ID}, stored.Links)
}

func TestUpdateNote(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)
	v := newVaultFor(t, e, u.ID)

	a, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("A"), Content: ptr("body")})
	require.NoError(t, err)
	b, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("B")})
	require.NoError(t, err)
	c, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("C")})
	require.NoError(t, err)

	links := []string{b.ID, c.ID, b.ID, a.ID, uuid.NewString()}
	got, err := e.notes.UpdateNote(ctx, u.ID, v.Vault.ID, a.ID, NoteFields{Links: &links})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, c.ID}, got.Links)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.True(t, got.UpdatedAt.After(a.UpdatedAt))

	// links omitted: untouched
	got, err = e.notes.UpdateNote(ctx, u.ID, v.Vault.ID, a.ID, NoteFields{Title: ptr("A2")})
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, []string{b.ID, c.ID}, got.Links)

	// empty links: cleared
	empty := []string{}
	got, err = e.notes.UpdateNote(ctx, u.ID, v.Vault.ID, a.ID, NoteFields{Links: &empty})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Links)

	// most recently updated first
	list, err := e.notes.ListNotes(ctx, u.ID, v.Vault.ID)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, a.ID, list[0].ID)
}

func TestUpdateNote_NotFound(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice, bob := e.insertBareUser(t), e.insertBareUser(t)
	v := newVaultFor(t, e, alice.ID)
	other := newVaultFor(t, e, alice.ID)

	n, err := e.notes.CreateNote(ctx, alice.ID, v.Vault.ID, NoteFields{Title: ptr("x")})
	require.NoError(t, err)

	_, err = e.notes.UpdateNote(ctx, bob.ID, v.Vault.ID, n.ID, NoteFields{Title: ptr("y")})
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.notes.UpdateNote(ctx, alice.ID, other.Vault.ID, n.ID, NoteFields{Title: ptr("y")})
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.notes.UpdateNote(ctx, alice.ID, v.Vault.ID, "nope", NoteFields{Title: ptr("y")})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteNote_LeavesDanglingLinks(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.insertBareUser(t)
	v := newVaultFor(t, e, u.ID)

	target, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("target")})
	require.NoError(t, err)
	links := []string{target.ID}
	src, err := e.notes.CreateNote(ctx, u.ID, v.Vault.ID, NoteFields{Title: ptr("src"), Links: &links})
	require.NoError(t, err)
	require.Equal(t, []string{target.ID}, src.Links)

	require.NoError(t, e.notes.DeleteNote(ctx, u.ID, v.Vault.ID, target.ID))
	require.ErrorIs(t, e.notes.DeleteNote(ctx, u.ID, v.Vault.ID, target.ID), common.ErrorNotFound)

	stored, err := e.rm.Notes(e.db).Get(ctx, v.Vault.ID, src.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{target.ID}, stored.Links)
}

func TestNotes_ForeignVault(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice, bob := e.insertBareUser(t), e.insertBareUser(t)
	v := newVaultFor(t, e, alice.ID)

	_, err := e.notes.ListNotes(ctx, bob.ID, v.Vault.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.notes.CreateNote(ctx, bob.ID, v.Vault.ID, NoteFields{Title: ptr("intruder")})
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.ErrorIs(t, e.notes.DeleteNote(ctx, bob.ID, v.Vault.ID, v.Notes[0].ID), common.ErrorNotFound)

	list, err := e.notes.ListNotes(ctx, alice.ID, v.Vault.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
