package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the identity carried by an API bearer token
type TokenClaims struct {
	UserID   int64
	GithubID string
	Name     string
}

// SignToken issues an HS256 bearer token for the given user identity
func SignToken(secret []byte, claims TokenClaims, lifetime time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(lifetime)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      claims.UserID,
		"githubId": claims.GithubID,
		"name":     claims.Name,
		"exp":      exp.Unix(),
		"iat":      time.Now().Unix(),
	})
	ss, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return ss, exp, nil
}

// ParseToken validates a bearer token and returns its claims
func ParseToken(secret []byte, tokenStr string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, ErrInvalidToken
	}
	githubID, _ := claims["githubId"].(string)
	name, _ := claims["name"].(string)
	return &TokenClaims{
		UserID:   int64(sub),
		GithubID: githubID,
		Name:     name,
	}, nil
}
