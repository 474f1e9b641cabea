package auth

import (
	"errors"
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the bearer token payload. The token ID doubles as the
// session key in the session store.
type SessionClaims struct {
	Role constants.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) SessionID() string { return c.ID }
func (c *SessionClaims) UserID() string { return c.Subject }

// TokenIssuer signs and parses HS256 bearer tokens.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
}

func NewTokenIssuer(secretKey []byte) *TokenIssuer {
	return &TokenIssuer{secretKey: secretKey, issuer: "helo-portal"}
}

// Issue signs a token for the given session.
func (t *TokenIssuer) Issue(sessionID, userID string, role constants.Role, issuedAt, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse checks the signature only. Expiry is enforced by the session store so
// an expired session is purged the first time it is read.
func (t *TokenIssuer) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
