// Package auth issues and verifies the HS256 tokens that carry a caller's
// ledger identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/common"
)

const issuer = "lockstake"

// Claims binds the identity to the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

func GenerateToken(identity accounts.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("%w: empty identity", common.ErrInvalidToken)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   string(identity),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	return token.SignedString(secretKey)
}

// IdentityFromToken verifies tokenString and returns its subject.
// Expired tokens yield common.ErrTokenExpired, anything else that does not
// verify yields common.ErrInvalidToken.
func IdentityFromToken(tokenString string, secretKey []byte) (accounts.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", common.ErrTokenExpired
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return accounts.Identity(claims.Subject), nil
}
