package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session maps an opaque identifier to an account. It deliberately carries
// no role or ban state: every request re-resolves the account so that
// moderation actions take effect on the very next call.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
}

type Store interface {
	Create(ctx context.Context, accountID uuid.UUID) (Session, error)
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForAccount(ctx context.Context, accountID uuid.UUID) error
}
