// Package auth is the credential service: password hashing, signed access
// tokens, and opaque refresh token strings.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shakirkaki-dev/fudpin-backend-v3/config"
)

// Service issues and validates credentials. It is constructed once from the
// immutable config and shared by handlers and middleware.
type Service struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:          cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateAccessToken creates a signed JWT whose subject is the user id.
func (s *Service) GenerateAccessToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseAccessToken verifies the signature and expiry of an access token and
// returns the user id from its subject claim.
func (s *Service) ParseAccessToken(tokenStr string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, jwt.ErrTokenInvalidSubject
	}
	return uint(userID), nil
}

// NewRefreshTokenString mints an opaque token string. Refresh tokens carry no
// claims; their state lives in the refresh_tokens table.
func NewRefreshTokenString() string {
	return uuid.NewString()
}

// RefreshTokenExpiry returns the expires_at for a token minted now.
func (s *Service) RefreshTokenExpiry() time.Time {
	return time.Now().Add(s.refreshTokenTTL)
}
