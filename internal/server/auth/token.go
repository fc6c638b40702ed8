// Package auth signs and verifies the cookie token that carries a session
// id. The session itself is server-side state; the token only proves the
// id was issued by us and has not been tampered with.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/reviewpulse/internal/common"
)

// Claims includes the registered claims plus the server-side session id.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string
}

// GenerateToken signs a token for the given session id, valid for
// validityDuration. HS256 with a shared secret.
func GenerateToken(sessionID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSessionIDFromToken verifies the signature and expiry and extracts the
// session id. Any verification failure yields common.ErrInvalidToken.
func GetSessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.SessionID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.SessionID, nil
}
