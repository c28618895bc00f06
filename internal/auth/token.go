package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims: the registered set plus the user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// TokenIssuer mints and validates HS256 session tokens for authenticated
// sessions.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, validity: validity}
}

// Generate returns a signed token carrying userID, expiring after the
// issuer's validity window.
func (i *TokenIssuer) Generate(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// UserID parses and validates tokenString and returns the user ID it
// carries. Expired or tampered tokens yield ErrInvalidToken.
func (i *TokenIssuer) UserID(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
