package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/session"
)

var (
	ErrNotFound     = errors.New("account not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrAdminImmune: administrator accounts cannot be banned through this
	// API. The original frontend merely hid the button; here the rule is
	// enforced server-side.
	ErrAdminImmune = errors.New("administrators cannot be banned")
	ErrInternal    = errors.New("internal error")
)

type BanInput struct {
	DurationDays int
	Indefinite   bool
}

type Service struct {
	accounts account.Repository
	sessions session.Store

	now func() time.Time
}

func NewService(accounts account.Repository, sessions session.Store) *Service {
	return &Service{accounts: accounts, sessions: sessions, now: time.Now}
}

func (s *Service) ListUsers(ctx context.Context) ([]account.Account, error) {
	users, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	for i := range users {
		users[i].PasswordHash = ""
		users[i].VerificationCode = nil
	}
	return users, nil
}

// Ban suspends an account until now+durationDays, or forever with the
// indefinite sentinel. Sessions stay in Redis; the per-request ban check in
// the auth middleware is what locks the user out immediately.
func (s *Service) Ban(ctx context.Context, id uuid.UUID, in BanInput) (time.Time, error) {
	if !in.Indefinite && in.DurationDays <= 0 {
		return time.Time{}, ErrInvalidInput
	}

	target, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if target.Admin {
		return time.Time{}, ErrAdminImmune
	}

	until := account.BanIndefinite
	if !in.Indefinite {
		until = s.now().UTC().AddDate(0, 0, in.DurationDays)
	}

	if err := s.accounts.SetBanExpiry(ctx, id, &until); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return until, nil
}

func (s *Service) Unban(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.SetBanExpiry(ctx, id, nil); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// DeleteAccount removes the account, cascades its profiles at the store
// level and revokes its live sessions.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := s.sessions.DeleteForAccount(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
