package services

import (
	"errors"

	"estate-chat/config"
	chat_errors "estate-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies the identity tokens issued by the auth collaborator.
// Issuance, sessions and credential handling all live outside this service.
type AuthService struct {
	secret []byte
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{secret: []byte(cfg.JWTSecret)}
}

// AccessClaims mirrors the collaborator's token payload; the user id travels
// under the "id" claim.
type AccessClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chat_errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		// An expired token is reported as its own kind so clients can
		// refresh instead of re-authenticating.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AccessClaims{}, chat_errors.ErrTokenExpired
		}
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || claims.UserID == "" {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}
	return *claims, nil
}
