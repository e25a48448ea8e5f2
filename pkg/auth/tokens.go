package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated identity inside access and refresh tokens
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager mints and verifies HS256 access/refresh token pairs.
// The refresh token carries only the user id; profile fields ride on the
// access token so most requests never touch the user collection.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a token manager from the configured secrets
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// MintAccessToken issues a short-lived access token
func (m *TokenManager) MintAccessToken(userID, username, email string) (string, error) {
	return m.mint(m.accessSecret, m.accessTTL, &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
	})
}

// MintRefreshToken issues a long-lived refresh token
func (m *TokenManager) MintRefreshToken(userID string) (string, error) {
	return m.mint(m.refreshSecret, m.refreshTTL, &Claims{UserID: userID})
}

func (m *TokenManager) mint(secret []byte, ttl time.Duration, claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken parses and validates an access token
func (m *TokenManager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.accessSecret)
}

// VerifyRefreshToken parses and validates a refresh token
func (m *TokenManager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.refreshSecret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token carries no user id")
	}
	return claims, nil
}
