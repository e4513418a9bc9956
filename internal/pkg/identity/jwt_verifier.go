package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JwtVerifier validates HS256 tokens locally against a shared secret. Used
// in development and tests where no identity provider is reachable.
type JwtVerifier struct {
	secret []byte
}

var _ TokenVerifier = &JwtVerifier{}

func NewJwtVerifier(secret string) *JwtVerifier {
	return &JwtVerifier{secret: []byte(secret)}
}

func (v *JwtVerifier) Verify(_ context.Context, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		// Fall back to the standard subject claim
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return "", ErrInvalidToken
		}
		userID = sub
	}

	return userID, nil
}
