// Package auth implements the authorization gate: issuing signed bearer
// tokens and verifying the Authorization header of inbound requests.
// Verification is stateless; the only invalidation mechanism is token expiry.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoCredential means no Authorization header was presented at all.
	// Callers translate it to 401.
	ErrNoCredential = errors.New("no credential presented")
	// ErrInvalidToken means a credential was presented but failed signature
	// or expiry verification.  Callers translate it to 403.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Identity is the verified subject extracted from a bearer token, together
// with the token's timing metadata.  Downstream code trusts the email only
// because it came out of a verified token.
type Identity struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssueToken mints an HS256 token asserting email as subject, valid for ttl.
// Claims follow the portal's wire contract: email, iat and exp.
func IssueToken(secret, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyHeader validates a raw Authorization header value of the form
// "<scheme> <token>".  An empty header yields ErrNoCredential; anything else
// that does not verify yields ErrInvalidToken.  No state is read or written.
func VerifyHeader(secret, header string) (Identity, error) {
	if header == "" {
		return Identity{}, ErrNoCredential
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return Identity{}, ErrInvalidToken
	}
	tok, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, ErrInvalidToken
	}
	ident := Identity{Email: email}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		ident.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ident.ExpiresAt = exp.Time
	}
	return ident, nil
}
