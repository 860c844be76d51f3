package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/sessiontoken"
)

// SessionCookie writes and clears the signed session cookie. The value is a
// signed wrapper around the session ID and nothing else.
type SessionCookie struct {
	tokens sessiontoken.Service
	name   string
	ttl    time.Duration
	secure bool
}

func NewSessionCookie(tokens sessiontoken.Service, name string, ttl time.Duration, secure bool) *SessionCookie {
	return &SessionCookie{tokens: tokens, name: name, ttl: ttl, secure: secure}
}

func (s *SessionCookie) Set(c fiber.Ctx, sessionID uuid.UUID) error {
	token, err := s.tokens.Sign(sessionID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s *SessionCookie) Clear(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionID extracts and verifies the session reference from the request
// cookie; uuid.Nil when absent or invalid.
func (s *SessionCookie) SessionID(c fiber.Ctx) uuid.UUID {
	raw := c.Cookies(s.name)
	if raw == "" {
		return uuid.Nil
	}
	id, err := s.tokens.Verify(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
