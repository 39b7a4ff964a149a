// Package services contains server-side business logic: registration and
// login (UserService), vault management and default-vault bootstrap
// (VaultService), and notes with link sanitization (NoteService).
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/logging"
	"github.com/QuantumCastro/Vitrum/internal/server/auth"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

// UserService provides authentication-related operations:
// - Register: create a user together with their default vault
// - Login: verify credentials, make sure a vault exists, mint a token
type UserService struct {
	db          *bun.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	logger      logging.Logger
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db *bun.DB, m repomanager.RepositoryManager, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		logger:      logger.With("module", "user_service"),
		now:         utcNow,
	}
}

// Register creates a user with a bcrypt-hashed password and provisions the
// default vault in the same transaction. A taken email yields
// common.ErrorAlreadyExists; an oversized password common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, email, password string, displayName *string) (*AuthResult, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Users(s.db).GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hash,
		DisplayName:    displayName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return bootstrapDefaultVault(ctx, s.repomanager, tx, user.ID, now)
	}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login verifies credentials and returns a fresh access token. Unknown
// emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the response time close to a real mismatch
			auth.VerifyPassword(password, s.getDummyHash())
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return nil, common.ErrorUnauthorized
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return bootstrapDefaultVault(ctx, s.repomanager, tx, user.ID, s.now())
	}); err != nil {
		return nil, fmt.Errorf("error ensuring default vault: %w", err)
	}

	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword(uuid.NewString())
	})
	return s.dummyHash
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
