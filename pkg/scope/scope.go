package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"edupal/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims are the JWT claims carried by parent access tokens.
type Claims struct {
	StudentID string `json:"student_id"`
	Language  string `json:"language"`
	jwt.RegisteredClaims
}

// Manager signs and verifies access tokens.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Sign issues a token for the given scope.
func (m *Manager) Sign(sc model.Scope, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		StudentID: sc.StudentID,
		Language:  sc.Language,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sc.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning the scope it carries.
func (m *Manager) Verify(tokenString string) (model.Scope, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Scope{}, ErrExpiredToken
		}
		return model.Scope{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return model.Scope{}, ErrInvalidToken
	}

	return model.Scope{
		UserID:    claims.Subject,
		StudentID: claims.StudentID,
		Language:  claims.Language,
	}, nil
}
