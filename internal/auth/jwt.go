package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	tokenIssuer   = "prompt-service"
	tokenAudience = "prompt-service-api"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carries the identity and token-type claims of an issued JWT.
// Refresh tokens additionally carry a jti (RegisteredClaims.ID) so they can
// be revoked individually.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
}

// TokenManager issues and validates HS256-signed access/refresh token pairs.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GeneratePair issues a fresh access/refresh token pair for the user.
func (tm *TokenManager) GeneratePair(userID uint) (access, refresh string, err error) {
	if access, err = tm.GenerateAccess(userID); err != nil {
		return "", "", err
	}
	if refresh, err = tm.generate(userID, TokenTypeRefresh, tm.refreshTTL, uuid.NewString()); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAccess issues a standalone access token, used by the refresh flow.
func (tm *TokenManager) GenerateAccess(userID uint) (string, error) {
	return tm.generate(userID, TokenTypeAccess, tm.accessTTL, "")
}

func (tm *TokenManager) generate(userID uint, tokenType string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    userID,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ValidateAccess parses an access token and returns its claims.
func (tm *TokenManager) ValidateAccess(tokenString string) (*Claims, error) {
	return tm.validate(tokenString, TokenTypeAccess)
}

// ValidateRefresh parses a refresh token and returns its claims.
func (tm *TokenManager) ValidateRefresh(tokenString string) (*Claims, error) {
	return tm.validate(tokenString, TokenTypeRefresh)
}

func (tm *TokenManager) validate(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
