package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/session"
)

var (
	// ErrBadCredentials covers both an unknown email and a wrong password,
	// so login responses cannot be used to enumerate accounts.
	ErrBadCredentials   = errors.New("bad credentials")
	ErrPendingApproval  = errors.New("account pending administrator approval")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInternal         = errors.New("internal error")
)

// BannedError carries the suspension expiry so clients can render it.
type BannedError struct {
	Until time.Time
}

func (e *BannedError) Error() string {
	return "account banned until " + e.Until.Format(time.RFC3339)
}

type Service struct {
	accounts account.Repository
	sessions session.Store

	now func() time.Time
}

func NewService(accounts account.Repository, sessions session.Store) *Service {
	return &Service{accounts: accounts, sessions: sessions, now: time.Now}
}

// Login authenticates credentials and walks the access gates in order:
// admin approval, then email verification, then ban expiry. The first
// failing gate wins.
func (s *Service) Login(ctx context.Context, email, password string) (account.Account, session.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return account.Account{}, session.Session{}, ErrBadCredentials
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, session.Session{}, ErrBadCredentials
		}
		return account.Account{}, session.Session{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return account.Account{}, session.Session{}, ErrBadCredentials
	}

	if !a.AdminVerified {
		return account.Account{}, session.Session{}, ErrPendingApproval
	}
	if !a.EmailVerified {
		return account.Account{}, session.Session{}, ErrEmailNotVerified
	}
	if a.Banned(s.now()) {
		return account.Account{}, session.Session{}, &BannedError{Until: *a.BanExpiresAt}
	}

	sess, err := s.sessions.Create(ctx, a.ID)
	if err != nil {
		return account.Account{}, session.Session{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return sanitize(a), sess, nil
}

// EstablishSession mints a session outside the credential path, used after a
// successful email verification.
func (s *Service) EstablishSession(ctx context.Context, accountID uuid.UUID) (session.Session, error) {
	sess, err := s.sessions.Create(ctx, accountID)
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return sess, nil
}

// Logout destroys a session. Destroying an unknown session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// Authorize resolves a session to its current account. The account is
// re-fetched on every call so bans, deletions and privilege changes apply on
// the next request, not the next login.
func (s *Service) Authorize(ctx context.Context, sessionID uuid.UUID) (account.Account, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return account.Account{}, ErrUnauthenticated
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	a, err := s.accounts.GetByID(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// The account went away mid-session; reap the orphan.
			_ = s.sessions.Delete(ctx, sessionID)
			return account.Account{}, ErrUnauthenticated
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if a.Banned(s.now()) {
		return account.Account{}, &BannedError{Until: *a.BanExpiresAt}
	}

	return a, nil
}

func sanitize(a account.Account) account.Account {
	a.PasswordHash = ""
	a.VerificationCode = nil
	return a
}
