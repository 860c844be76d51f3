package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/session"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/verifycode"
)

var (
	// ErrInvalidCode covers an unknown email, a wrong code and an already
	// consumed code alike, so a caller cannot probe which half was wrong.
	ErrInvalidCode = errors.New("invalid verification code")
	ErrNotFound    = errors.New("company not found")
	ErrInternal    = errors.New("internal error")
)

type PendingCompany struct {
	Account account.Account
	Profile *account.CompanyProfile
}

type Service struct {
	accounts account.Repository
	profiles account.ProfileRepository
	sessions session.Store
}

func NewService(accounts account.Repository, profiles account.ProfileRepository, sessions session.Store) *Service {
	return &Service{accounts: accounts, profiles: profiles, sessions: sessions}
}

// VerifyCode proves email ownership. On success the verified flag flips and
// the stored code is cleared in the same statement, so it cannot be replayed.
func (s *Service) VerifyCode(ctx context.Context, email, submitted string) (account.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	submitted = strings.TrimSpace(submitted)
	if email == "" || submitted == "" {
		return account.Account{}, ErrInvalidCode
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrInvalidCode
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !verifycode.Match(a.VerificationCode, submitted) {
		return account.Account{}, ErrInvalidCode
	}

	// The store re-checks the code inside the write, so a concurrent
	// submission of the same code consumes it exactly once.
	if err := s.accounts.ConsumeVerificationCode(ctx, a.ID, submitted); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrInvalidCode
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	a.EmailVerified = true
	a.VerificationCode = nil
	a.PasswordHash = ""
	return a, nil
}

func (s *Service) ListPendingCompanies(ctx context.Context) ([]PendingCompany, error) {
	accounts, err := s.accounts.ListPendingCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := make([]PendingCompany, 0, len(accounts))
	for _, a := range accounts {
		a.PasswordHash = ""
		a.VerificationCode = nil
		pc := PendingCompany{Account: a}
		if profile, err := s.profiles.GetCompanyProfile(ctx, a.ID); err == nil {
			pc.Profile = &profile
		}
		out = append(out, pc)
	}
	return out, nil
}

// ApproveCompany clears the admin gate and substitutes for the email proof.
// Approving an already approved company is a no-op.
func (s *Service) ApproveCompany(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.SetAdminVerified(ctx, id); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// RejectCompany hard-deletes the account, its profile and any live sessions.
func (s *Service) RejectCompany(ctx context.Context, id uuid.UUID) error {
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
