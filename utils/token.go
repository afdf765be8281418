package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the signed bearer tokens that carry
// a user's id and role. The secret comes from the config struct, never
// from the environment directly.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		Secret: []byte(secret),
		TTL:    24 * time.Hour,
	}
}

type TokenClaims struct {
	UserID uuid.UUID
	Role   string
}

func (s *TokenService) Generate(userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(s.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verify checks the signature and expiry and returns the embedded
// claims. Any failure collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	idStr, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)

	userID, err := uuid.Parse(idStr)
	if err != nil || role == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, Role: role}, nil
}
