package biz

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens. Token issuance lives in
	// the identity tier; this service only verifies.
	JWTSecret string `conf:"jwt_secret" yaml:"jwt_secret" json:"jwt_secret"`
}

func NewAuthService(cfg AuthConfig) *AuthService {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return &AuthService{secret: []byte(secret)}
}

// AuthService verifies bearer tokens and extracts the caller identity from
// the subject claim.
type AuthService struct {
	secret []byte
}

// VerifyToken parses an HS256 token and returns the subject identity.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", ErrInvalidToken)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject: %w", ErrInvalidToken)
	}

	return subject, nil
}

// GenerateToken issues an HS256 token for the given identity. Kept for tests
// and operational tooling; production tokens come from the identity tier.
func (s *AuthService) GenerateToken(identity string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": identity,
		"exp": time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
