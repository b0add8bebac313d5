// Package auth issues and validates the JWTs that gate the admin routes in
// internal/api: batch generation and stats. There is exactly one principal,
// the admin — no user accounts, no guest sessions. HashPassword and
// CheckPassword offer bcrypt hashing for an admin password; token issuance
// itself takes no password.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims identifies the admin principal carried by a token. Subject is fixed
// ("admin") since there is only ever one.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// Service issues and validates admin session tokens.
type Service struct {
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewService returns a Service signing and verifying with jwtSecret.
func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 12 * time.Hour,
	}
}

// HashPassword hashes an admin password for storage in configuration.
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a login attempt against the configured hash.
func (s *Service) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues a signed admin session token.
func (s *Service) GenerateToken() (string, error) {
	claims := &Claims{
		Subject: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "wordsearch-solver",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
