package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/domains"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/verifycode"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrWeakPassword     = errors.New("password too short")
	ErrDomainNotAllowed = errors.New("email domain not allowed")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrInternal         = errors.New("internal error")
)

// CodeSender dispatches the one-time verification code. Delivery is
// fire-and-forget: signup success never depends on it.
type CodeSender interface {
	SendVerificationCode(to, code string) error
}

type RegisterInput struct {
	Role      account.Role
	FirstName string
	LastName  string
	Email     string
	Password  string

	// Student fields.
	SchoolID *int64

	// Company fields.
	CompanyName        string
	CompanyWebsite     string
	CompanyDescription string
}

type Service struct {
	accounts       account.Repository
	sender         CodeSender
	minPasswordLen int
	logger         zerolog.Logger
}

func NewService(accounts account.Repository, sender CodeSender, minPasswordLen int, logger zerolog.Logger) *Service {
	if minPasswordLen < 1 {
		minPasswordLen = 1
	}
	return &Service{accounts: accounts, sender: sender, minPasswordLen: minPasswordLen, logger: logger}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (account.Account, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return account.Account{}, ErrInvalidInput
	}
	if len(in.Password) < s.minPasswordLen {
		return account.Account{}, ErrWeakPassword
	}

	role := in.Role
	if role == "" {
		role = account.RoleStudent
	}

	if role != account.RoleCompany && !domains.EmailAllowed(email) {
		return account.Account{}, ErrDomainNotAllowed
	}
	if role == account.RoleCompany && strings.TrimSpace(in.CompanyName) == "" {
		return account.Account{}, ErrInvalidInput
	}

	// Fast path only: the unique index on accounts.email is what actually
	// decides concurrent duplicate signups.
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if exists {
		return account.Account{}, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	code, err := verifycode.Generate()
	if err != nil {
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	a := account.Account{
		ID:               uuid.New(),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            email,
		PasswordHash:     string(hash),
		Role:             role,
		EmailVerified:    false,
		AdminVerified:    role != account.RoleCompany,
		VerificationCode: &code,
	}

	var sp *account.StudentProfile
	var cp *account.CompanyProfile
	switch role {
	case account.RoleCompany:
		cp = &account.CompanyProfile{
			AccountID:   a.ID,
			Name:        strings.TrimSpace(in.CompanyName),
			Website:     optional(in.CompanyWebsite),
			Description: optional(in.CompanyDescription),
		}
	default:
		a.SchoolID = in.SchoolID
		sp = &account.StudentProfile{
			AccountID:    a.ID,
			SearchType:   account.DefaultSearchType,
			SearchStatus: account.DefaultSearchStatus,
		}
	}

	if err := s.accounts.Create(ctx, a, sp, cp); err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return account.Account{}, ErrDuplicateAccount
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	go func(to, code string) {
		if err := s.sender.SendVerificationCode(to, code); err != nil {
			s.logger.Error().Err(err).Str("to", to).Msg("verification mail dispatch failed")
		}
	}(email, code)

	return sanitize(a), nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	a, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return a, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return a, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func sanitize(a account.Account) account.Account {
	a.PasswordHash = ""
	a.VerificationCode = nil
	return a
}
