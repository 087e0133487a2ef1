package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService issues and validates the API bearer tokens used by the
// single-household deployment. There are no user accounts: a token proves
// possession of the configured secret.
type AuthService interface {
	IssueToken(subject string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	secret []byte
	expiry time.Duration
}

func NewAuthService(secret string, expiry time.Duration) AuthService {
	return &authServiceImpl{secret: []byte(secret), expiry: expiry}
}

func (s *authServiceImpl) IssueToken(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
