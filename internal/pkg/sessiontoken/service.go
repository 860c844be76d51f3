package sessiontoken

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrTokenInvalid = errors.New("session token invalid")

// Service signs and verifies the cookie value. The token wraps nothing but
// the session ID: roles, ban state and verification flags are re-read from
// the stores on every request, never trusted from the cookie.
type Service interface {
	Sign(sessionID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

type HMACService struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewHMACService(secret string, ttl time.Duration) *HMACService {
	return &HMACService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type claims struct {
	jwtlib.RegisteredClaims
}

func (s *HMACService) Sign(sessionID uuid.UUID) (string, error) {
	now := s.now().UTC()
	c := claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        sessionID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) Verify(token string) (uuid.UUID, error) {
	p := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c claims
	tok, err := p.ParseWithClaims(token, &c, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	sessionID, err := uuid.Parse(c.ID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return sessionID, nil
}
