package helpers

import (
	"errors"
	"time"

	"github.com/farellandr/techfesia/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	purposeAccess            = "access"
	purposeEmailConfirmation = "email_confirmation"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID  string `json:"user_id,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  user.ID.String(),
		Role:    user.Role.Name,
		Purpose: purposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func GenerateConfirmationToken(secret, username string, ttl time.Duration) (string, error) {
	claims := Claims{
		Purpose: purposeEmailConfirmation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken verifies an access token and returns its claims.
func ParseAccessToken(secret, tokenString string) (*Claims, error) {
	claims, err := parseToken(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purposeAccess {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseConfirmationToken verifies an email confirmation token issued for
// username.
func ParseConfirmationToken(secret, tokenString, username string) error {
	claims, err := parseToken(secret, tokenString)
	if err != nil {
		return err
	}
	if claims.Purpose != purposeEmailConfirmation || claims.Subject != username {
		return ErrInvalidToken
	}
	return nil
}

func parseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
