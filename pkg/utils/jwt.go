package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ManagerClaims represents the claims in a manager session token.
// There is exactly one manager principal (the shared passcode), so the
// claims carry only a session id for log correlation.
type ManagerClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// JWTManager handles manager session token generation and validation
type JWTManager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// GenerateManagerToken generates a new manager session token
func (m *JWTManager) GenerateManagerToken() (string, error) {
	sessionID := uuid.New()
	claims := &ManagerClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "till-api",
			Subject:   "manager",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateManagerToken validates a manager session token and returns the claims
func (m *JWTManager) ValidateManagerToken(tokenString string) (*ManagerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ManagerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ManagerClaims)
	if !ok || !token.Valid || claims.Subject != "manager" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
