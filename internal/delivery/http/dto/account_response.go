package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
)

// AccountResponse is the public view of an account. The password hash and
// verification code never appear here.
type AccountResponse struct {
	ID        uuid.UUID    `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Role      account.Role `json:"userType"`
	Admin     bool         `json:"admin"`
	SchoolID  *int64       `json:"schoolId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func FromAccount(a account.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
		Admin:     a.Admin,
		SchoolID:  a.SchoolID,
		CreatedAt: a.CreatedAt,
	}
}

// AdminUserResponse extends the public view with moderation state for the
// admin dashboard.
type AdminUserResponse struct {
	AccountResponse
	EmailVerified bool       `json:"emailVerified"`
	AdminVerified bool       `json:"adminVerified"`
	BanExpiresAt  *time.Time `json:"banExpiresAt"`
}

func FromAccountForAdmin(a account.Account) AdminUserResponse {
	return AdminUserResponse{
		AccountResponse: FromAccount(a),
		EmailVerified:   a.EmailVerified,
		AdminVerified:   a.AdminVerified,
		BanExpiresAt:    a.BanExpiresAt,
	}
}
