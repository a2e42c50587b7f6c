package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewSessionToken returns a cryptographically secure random token used
// as the value of the session cookie. Only the SHA-256 hash of the raw
// token is stored server-side, so a leaked session dump cannot be
// replayed against the API.
func NewSessionToken() (string, error) {
	return randomHex(48) // 48 bytes -> 96 hex chars
}

// HashToken returns the SHA-256 hash of a raw token as a hex string.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const verifyPurpose = "verify-email"

// ErrBadVerifyToken is returned when an email verification token cannot
// be parsed, is expired, or was issued for a different purpose.
var ErrBadVerifyToken = errors.New("invalid verification token")

// NewVerificationToken builds and signs an HS256 JWT embedded in the
// verification link mailed to a newly registered customer. The claims
// carry the customer id (sub), a purpose marker and an expiration so a
// stale link cannot verify an account.
func NewVerificationToken(secret, customerID string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":     customerID,
		"purpose": verifyPurpose,
		"exp":     exp.Unix(),
		"iat":     time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseVerificationToken validates a verification token and returns the
// customer id it was issued for.
func ParseVerificationToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadVerifyToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrBadVerifyToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrBadVerifyToken
	}
	if p, _ := claims["purpose"].(string); p != verifyPurpose {
		return "", ErrBadVerifyToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrBadVerifyToken
	}
	return sub, nil
}
