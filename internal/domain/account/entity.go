package account

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

// BanIndefinite is the sentinel expiry used for bans that never elapse.
var BanIndefinite = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

type Account struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string
	Role             Role
	Admin            bool
	EmailVerified    bool
	AdminVerified    bool
	VerificationCode *string
	BanExpiresAt     *time.Time
	SchoolID         *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Banned reports whether the account is suspended at the given instant.
func (a Account) Banned(now time.Time) bool {
	return a.BanExpiresAt != nil && a.BanExpiresAt.After(now)
}

// LoginEligible reports whether every access gate is clear at the given
// instant: admin approval, email verification, ban expiry.
func (a Account) LoginEligible(now time.Time) bool {
	return a.AdminVerified && a.EmailVerified && !a.Banned(now)
}

type StudentProfile struct {
	ID           int64
	AccountID    uuid.UUID
	SearchType   string
	SearchStatus string
	Bio          *string
	StudyDomain  *string
	Linkedin     *string
	Github       *string
	Portfolio    *string
	CVPath       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CompanyProfile struct {
	ID          int64
	AccountID   uuid.UUID
	Name        string
	Website     *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	DefaultSearchType   = "Stage"
	DefaultSearchStatus = "En recherche"
)
