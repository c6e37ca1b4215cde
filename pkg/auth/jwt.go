// Package auth turns backend tokens into persisted session identities.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a bearer token issued by the social API.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ErrMalformedToken is returned for strings that are not a JWT.
var ErrMalformedToken = errors.New("malformed token")

// ParseClaims reads the claims of tokenString WITHOUT verifying its
// signature. The client never holds the signing secret; the backend is the
// authority and the result is only used to label and expire stored logins.
func ParseClaims(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// ExpiresAt returns the token expiry, or the zero time if it has none or
// cannot be parsed.
func ExpiresAt(tokenString string) time.Time {
	claims, err := ParseClaims(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// IsExpired reports whether the token's exp claim is before now. Tokens
// that cannot be parsed count as expired.
func IsExpired(tokenString string, now time.Time) bool {
	claims, err := ParseClaims(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// Sign issues an HS256 token for the user, valid for ttl.
func Sign(secret []byte, userID int64, username string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks the signature and expiry of tokenString.
func Verify(secret []byte, tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
