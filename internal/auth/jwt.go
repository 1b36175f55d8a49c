// Package auth issues and checks admin session tokens and password hashes.
//
// HOW AN ADMIN SESSION WORKS:
//  1. POST /api/admin/login checks the password against the stored bcrypt hash.
//  2. On success a TokenService signs a short JWT whose subject is the user id.
//  3. The token goes back both in the body and as an HttpOnly "token" cookie.
//  4. RequireAuth accepts either the cookie or an "Authorization: Bearer" header
//     on every /api/admin route after that.
//
// Nothing is stored server-side for a session; logout only clears the cookie.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const (
	issuer = "kormimvp"

	// DefaultTokenTTL is how long an admin session lasts.
	DefaultTokenTTL = 12 * time.Hour
)

// ErrTokenExpired is returned by Validate for a well-formed but expired token.
var ErrTokenExpired = errors.New("auth: token expired")

// TokenService signs and verifies HS256 tokens with one shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService rejects secrets shorter than 16 characters; HS256 with a
// short key is brute-forceable.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of tokens from Generate. Handlers use it for the
// cookie's Max-Age.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Generate signs a token for userID that expires after the service TTL.
func (s *TokenService) Generate(userID int) (string, error) {
	return s.generate(userID, s.ttl)
}

func (s *TokenService) generate(userID int, ttl time.Duration) (string, error) {
	now := s.now()

	c := jwt.RegisteredClaims{
		ID:        xid.New().String(),
		Subject:   strconv.Itoa(userID),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer and expiry and returns the
// user id from the subject.
//
// ALGORITHM PINNING:
// WithValidMethods stops a token that claims "alg": "none" (or an RSA alg
// keyed with our secret) from ever reaching the key function.
func (s *TokenService) Validate(tokenStr string) (int, error) {
	var c jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &c,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	userID, err := strconv.Atoi(c.Subject)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("auth: token subject %q is not a user id", c.Subject)
	}
	return userID, nil
}
