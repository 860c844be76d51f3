package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/session"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrWrongPassword = errors.New("current password incorrect")
	ErrWeakPassword  = errors.New("new password too short")
	ErrInternal      = errors.New("internal error")
)

type Me struct {
	Account        account.Account
	StudentProfile *account.StudentProfile
	CompanyProfile *account.CompanyProfile
}

type StudentUpdate struct {
	SearchType   string
	SearchStatus string
	Bio          *string
	StudyDomain  *string
	Linkedin     *string
	Github       *string
	Portfolio    *string
	CVPath       *string
}

type CompanyUpdate struct {
	Name        string
	Website     *string
	Description *string
}

type Service struct {
	accounts       account.Repository
	profiles       account.ProfileRepository
	sessions       session.Store
	minPasswordLen int
}

func NewService(accounts account.Repository, profiles account.ProfileRepository, sessions session.Store, minPasswordLen int) *Service {
	if minPasswordLen < 1 {
		minPasswordLen = 1
	}
	return &Service{accounts: accounts, profiles: profiles, sessions: sessions, minPasswordLen: minPasswordLen}
}

func (s *Service) Me(ctx context.Context, accountID uuid.UUID) (Me, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return Me{}, ErrNotFound
		}
		return Me{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	a.PasswordHash = ""
	a.VerificationCode = nil

	me := Me{Account: a}
	if sp, err := s.profiles.GetStudentProfile(ctx, accountID); err == nil {
		me.StudentProfile = &sp
	}
	if cp, err := s.profiles.GetCompanyProfile(ctx, accountID); err == nil {
		me.CompanyProfile = &cp
	}
	return me, nil
}

// UpdateStudentProfile upserts; an account that never filled its profile in
// gets one created on first save.
func (s *Service) UpdateStudentProfile(ctx context.Context, accountID uuid.UUID, in StudentUpdate) (account.StudentProfile, error) {
	p := account.StudentProfile{
		AccountID:    accountID,
		SearchType:   in.SearchType,
		SearchStatus: in.SearchStatus,
		Bio:          in.Bio,
		StudyDomain:  in.StudyDomain,
		Linkedin:     in.Linkedin,
		Github:       in.Github,
		Portfolio:    in.Portfolio,
		CVPath:       in.CVPath,
	}
	updated, err := s.profiles.UpsertStudentProfile(ctx, p)
	if err != nil {
		return account.StudentProfile{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return updated, nil
}

func (s *Service) UpdateCompanyProfile(ctx context.Context, accountID uuid.UUID, in CompanyUpdate) (account.CompanyProfile, error) {
	p := account.CompanyProfile{
		AccountID:   accountID,
		Name:        in.Name,
		Website:     in.Website,
		Description: in.Description,
	}
	updated, err := s.profiles.UpsertCompanyProfile(ctx, p)
	if err != nil {
		return account.CompanyProfile{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return updated, nil
}

func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, current, next string) error {
	if len(next) < s.minPasswordLen {
		return ErrWeakPassword
	}

	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.accounts.SetPasswordHash(ctx, accountID, string(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// DeleteMe removes the account and every session it holds.
func (s *Service) DeleteMe(ctx context.Context, accountID uuid.UUID) error {
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := s.sessions.DeleteForAccount(ctx, accountID); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
