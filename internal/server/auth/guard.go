package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/google/uuid"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Guard resolves bearer tokens to users.
type Guard struct {
	tokens TokenVerifier
	users  UserFinder
}

func NewGuard(tokens TokenVerifier, users UserFinder) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate returns the user a token was issued for. Tokens that fail
// verification, carry a non-UUID subject or point at a deleted user all
// yield common.ErrInvalidToken.
func (g *Guard) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := g.users.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
