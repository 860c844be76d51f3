package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/dto"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/domains"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/response"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/auth"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/identity"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/verification"
)

type AuthHandler struct {
	identity     *identity.Service
	verification *verification.Service
	auth         *auth.Service
	cookies      *SessionCookie
	loginLimiter *middleware.RateLimitMiddleware
}

func NewAuthHandler(
	identitySvc *identity.Service,
	verificationSvc *verification.Service,
	authSvc *auth.Service,
	cookies *SessionCookie,
	loginLimiter *middleware.RateLimitMiddleware,
) *AuthHandler {
	return &AuthHandler{
		identity:     identitySvc,
		verification: verificationSvc,
		auth:         authSvc,
		cookies:      cookies,
		loginLimiter: loginLimiter,
	}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.loginLimiter.Middleware(), h.Login)
	r.Post("/verify-code", h.VerifyCode)
	r.Get("/logout", h.Logout)
	r.Get("/domains", h.Domains)
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserType  string `json:"userType"`

	SchoolID *int64 `json:"schoolId"`

	CompanyName        string `json:"companyName"`
	CompanyWebsite     string `json:"companyWebsite"`
	CompanyDescription string `json:"companyDescription"`
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var role account.Role
	switch req.UserType {
	case "", string(account.RoleStudent):
		role = account.RoleStudent
	case string(account.RoleCompany):
		role = account.RoleCompany
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil,
			fmt.Errorf("unknown user type %q", req.UserType))
	}

	usr, err := h.identity.Register(c.Context(), identity.RegisterInput{
		Role:               role,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Password:           req.Password,
		SchoolID:           req.SchoolID,
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		CompanyDescription: req.CompanyDescription,
	})
	if err != nil {
		return mapIdentityError(err)
	}

	msg := "Compte créé, un code de vérification a été envoyé par email."
	if role == account.RoleCompany {
		msg = "Compte créé, en attente de validation par un administrateur."
	}
	return response.Success(c, fiber.StatusOK, msg, fiber.Map{"user": dto.FromAccount(usr)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, sess, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	if err := h.cookies.Set(c, sess.ID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"user": dto.FromAccount(usr)})
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *AuthHandler) VerifyCode(c fiber.Ctx) error {
	var req verifyCodeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.verification.VerifyCode(c.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, verification.ErrInvalidCode) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Code incorrect", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	// Proving email ownership logs the account in, but only once every
	// gate is clear. A company still waiting on admin approval gets its
	// flag flipped without a session.
	if usr.LoginEligible(time.Now()) {
		sess, err := h.auth.EstablishSession(c.Context(), usr.ID)
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if err := h.cookies.Set(c, sess.ID); err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"user": dto.FromAccount(usr)})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if sessionID := h.cookies.SessionID(c); sessionID != uuid.Nil {
		_ = h.auth.Logout(c.Context(), sessionID)
	}
	h.cookies.Clear(c)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AuthHandler) Domains(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, domains.AllowedDomains)
}

func mapIdentityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrDuplicateAccount):
		return middleware.NewAppError(fiber.StatusConflict, "User already exists", nil, err)
	case errors.Is(err, identity.ErrDomainNotAllowed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Domaine email non autorisé", nil, err)
	case errors.Is(err, identity.ErrWeakPassword):
		return middleware.NewAppError(fiber.StatusBadRequest, "Mot de passe trop court", nil, err)
	case errors.Is(err, identity.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func mapAuthError(err error) error {
	var banned *auth.BannedError
	switch {
	case errors.As(err, &banned):
		data := fiber.Map{"banExpiresAt": banned.Until}
		return middleware.NewAppError(fiber.StatusForbidden, "Account suspended", data, err)
	case errors.Is(err, auth.ErrBadCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Identifiants invalides", nil, err)
	case errors.Is(err, auth.ErrPendingApproval):
		return middleware.NewAppError(fiber.StatusForbidden, "Compte en attente de validation", nil, err)
	case errors.Is(err, auth.ErrEmailNotVerified):
		return middleware.NewAppError(fiber.StatusForbidden, "Email non vérifié", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
