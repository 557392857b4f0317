package security

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const parentSubject = "parent"

var (
	ErrMissingToken = errors.New("missing parent token")
	ErrInvalidToken = errors.New("invalid parent token")
)

// ParentTokens issues and verifies the short-lived HS256 tokens that unlock
// the parent pages
type ParentTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewParentTokens creates a token issuer
func NewParentTokens(secret string, ttl time.Duration) *ParentTokens {
	return &ParentTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token and its expiry
func (p *ParentTokens) Issue() (string, time.Time, error) {
	now := p.now()
	expires := now.Add(p.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   parentSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign parent token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks signature, algorithm, subject and expiry
func (p *ParentTokens) Verify(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(parentSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
