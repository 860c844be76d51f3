package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repository interface {
	// Create inserts the account and, depending on the role, its initial
	// student or company profile in a single transaction. Duplicate emails
	// surface as ErrDuplicateEmail, decided by the store's unique index.
	Create(ctx context.Context, a Account, sp *StudentProfile, cp *CompanyProfile) error

	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	List(ctx context.Context) ([]Account, error)
	ListPendingCompanies(ctx context.Context) ([]Account, error)

	// ConsumeVerificationCode flips the email gate and clears the stored
	// code in one conditional write. ErrNotFound means the code no longer
	// matches, which includes a concurrent consumer having won the race.
	ConsumeVerificationCode(ctx context.Context, id uuid.UUID, code string) error
	SetAdminVerified(ctx context.Context, id uuid.UUID) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	SetBanExpiry(ctx context.Context, id uuid.UUID, until *time.Time) error

	// Delete removes the account; profiles cascade at the store level.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProfileRepository interface {
	GetStudentProfile(ctx context.Context, accountID uuid.UUID) (StudentProfile, error)
	UpsertStudentProfile(ctx context.Context, p StudentProfile) (StudentProfile, error)

	GetCompanyProfile(ctx context.Context, accountID uuid.UUID) (CompanyProfile, error)
	UpsertCompanyProfile(ctx context.Context, p CompanyProfile) (CompanyProfile, error)
}
