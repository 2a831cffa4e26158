package services

import (
	"fmt"
	"time"

	"wedding-site-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and validates the two token kinds the site uses:
// the admin session cookie and the per-card owner capability returned to
// guests at submission time. Both are HS256-signed, so neither can be
// forged by constructing a payload by hand.
type AuthService struct {
	jwtSecret         []byte
	adminUsername     string
	adminPasswordHash string
	guestPasswordHash string
	tokenLifetime     time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	days := cfg.TokenLifetimeDays
	if days <= 0 {
		days = 100
	}
	return &AuthService{
		jwtSecret:         []byte(cfg.JWTSecret),
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		guestPasswordHash: cfg.GuestPasswordHash,
		tokenLifetime:     time.Duration(days) * 24 * time.Hour,
	}
}

// TokenLifetime returns the configured session lifetime
func (s *AuthService) TokenLifetime() time.Duration {
	return s.tokenLifetime
}

// Login checks the admin credentials and returns a signed session token
// with its expiry
func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	if username != s.adminUsername {
		return "", time.Time{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrUnauthorized
	}

	expiresAt := time.Now().Add(s.tokenLifetime)
	claims := jwt.MapClaims{
		"sub": username,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateSession checks a session token and returns the admin username.
// Expired, malformed and tampered tokens all fail identically.
func (s *AuthService) ValidateSession(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", ErrUnauthorized
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", ErrUnauthorized
	}
	return username, nil
}

// CheckGuestPassword verifies the shared memory-card password
func (s *AuthService) CheckGuestPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(s.guestPasswordHash), []byte(password)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// IssueOwnerToken signs a capability binding a card to the fingerprint it
// was submitted with. Presenting it later proves ownership without the
// server trusting a bare client-supplied fingerprint.
func (s *AuthService) IssueOwnerToken(cardID, fingerprint string) (string, error) {
	claims := jwt.MapClaims{
		"card": cardID,
		"fp":   fingerprint,
		"exp":  time.Now().Add(s.tokenLifetime).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign owner token: %w", err)
	}
	return signed, nil
}

// ParseOwnerToken validates an owner capability and returns its card id
// and fingerprint claims
func (s *AuthService) ParseOwnerToken(tokenString string) (string, string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", "", ErrUnauthorized
	}
	cardID, ok := claims["card"].(string)
	if !ok || cardID == "" {
		return "", "", ErrUnauthorized
	}
	fingerprint, ok := claims["fp"].(string)
	if !ok || fingerprint == "" {
		return "", "", ErrUnauthorized
	}
	return cardID, fingerprint, nil
}

func (s *AuthService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
