package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/sessiontoken"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/auth"
)

const (
	CtxAccountKey   = "account"
	CtxSessionIDKey = "session_id"
)

// AuthMiddleware gates protected routes. It verifies the signed cookie,
// resolves the session and re-fetches the account on every request, so a
// ban, deletion or privilege change bites immediately, not at next login.
type AuthMiddleware struct {
	tokens     sessiontoken.Service
	authorizer *auth.Service
	cookieName string
}

func NewAuthMiddleware(tokens sessiontoken.Service, authorizer *auth.Service, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, authorizer: authorizer, cookieName: cookieName}
}

func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		a, sessionID, err := m.resolve(c)
		if err != nil {
			return err
		}

		c.Locals(CtxAccountKey, a)
		c.Locals(CtxSessionIDKey, sessionID)
		return c.Next()
	}
}

// RequireAdmin composes RequireAuth and checks the freshly loaded account's
// admin flag; it never trusts anything cached in the cookie.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		a, sessionID, err := m.resolve(c)
		if err != nil {
			return err
		}
		if !a.Admin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}

		c.Locals(CtxAccountKey, a)
		c.Locals(CtxSessionIDKey, sessionID)
		return c.Next()
	}
}

func (m *AuthMiddleware) resolve(c fiber.Ctx) (account.Account, uuid.UUID, error) {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return account.Account{}, uuid.Nil, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessionID, err := m.tokens.Verify(raw)
	if err != nil {
		return account.Account{}, uuid.Nil, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	}

	a, err := m.authorizer.Authorize(c.Context(), sessionID)
	if err != nil {
		var banned *auth.BannedError
		switch {
		case errors.As(err, &banned):
			data := fiber.Map{"banExpiresAt": banned.Until}
			return account.Account{}, uuid.Nil, NewAppError(fiber.StatusForbidden, "Account suspended", data, err)
		case errors.Is(err, auth.ErrUnauthenticated):
			return account.Account{}, uuid.Nil, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		default:
			return account.Account{}, uuid.Nil, NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}

	return a, sessionID, nil
}

// AccountFromCtx returns the account resolved by RequireAuth/RequireAdmin.
func AccountFromCtx(c fiber.Ctx) (account.Account, bool) {
	a, ok := c.Locals(CtxAccountKey).(account.Account)
	return a, ok
}

func SessionIDFromCtx(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxSessionIDKey).(uuid.UUID)
	return id, ok
}
