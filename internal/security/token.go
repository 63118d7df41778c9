package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"imagedrop/api/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed input, unexpected algorithm and expiry. Callers that need a
// boolean login state treat all of them the same.
var ErrInvalidToken = errors.New("invalid token")

type SessionClaims struct {
	User models.TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a stateless session token carrying the minimal
// user projection, expiring ttl from now. The token is not persisted and
// cannot be revoked before expiry.
func IssueSessionToken(secret string, user models.TokenUser, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies signature and expiry and returns the embedded
// claims.
func ParseSessionToken(tokenStr string, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
