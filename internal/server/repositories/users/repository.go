package users

import (
	"context"
	"time"

	"github.com/QuantumCastro/Vitrum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// MarkBootstrapCheck stamps the user row, holding its write lock until
	// the surrounding transaction ends.
	MarkBootstrapCheck(ctx context.Context, id string, at time.Time) error
}
