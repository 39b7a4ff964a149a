package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/QuantumCastro/Vitrum/internal/logging"
	"github.com/QuantumCastro/Vitrum/internal/server/auth"
	"github.com/QuantumCastro/Vitrum/internal/server/dbtest"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// fakeClock ticks one second per call so ordering by timestamp is stable.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type testEnv struct {
	db     *bun.DB
	rm     repomanager.RepositoryManager
	tokens *auth.TokenService
	users  *UserService
	vaults *VaultService
	notes  *NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.NewSQLite(t)
	rm := repomanager.NewBunRepositoryManager()
	tokens, err := auth.NewTokenService("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	e := &testEnv{
		db:     db,
		rm:     rm,
		tokens: tokens,
		users:  NewUserService(db, rm, tokens, logging.NewNop()),
		vaults: NewVaultService(db, rm),
		notes:  NewNoteService(db, rm),
	}
	e.users.now = clock.Now
	e.vaults.now = clock.Now
	e.notes.now = clock.Now
	return e
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	res, err := e.users.Register(context.Background(), email, "password123", nil)
	require.NoError(t, err)
	return res.User
}

// insertBareUser creates a user without running the default-vault bootstrap.
func (e *testEnv) insertBareUser(t *testing.T) *models.User {
	t.Helper()
	now := time.Now().UTC()
	u := &models.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com", HashedPassword: "x", CreatedAt: now, UpdatedAt: now}
	_, err := e.rm.Users(e.db).Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
