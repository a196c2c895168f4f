package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type TokenClaims struct {
	UserID    uuid.UUID
	JTI       uuid.UUID
	Type      string
	ExpiresAt time.Time
}

// GenerateTokenPair issues a short-lived access token and a refresh token
// carrying a jti so it can be blacklisted on logout.
func GenerateTokenPair(userID uuid.UUID, secret string) (*TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"typ":     TokenTypeAccess,
		"exp":     now.Add(AccessTokenTTL).Unix(),
	})
	accessString, err := access.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"typ":     TokenTypeRefresh,
		"jti":     uuid.New().String(),
		"exp":     now.Add(RefreshTokenTTL).Unix(),
	})
	refreshString, err := refresh.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{Refresh: refreshString, Access: accessString}, nil
}

// ParseToken verifies the signature and expiry and checks the token is of
// the expected type.
func ParseToken(tokenString, tokenType, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	if typ != tokenType {
		return nil, ErrInvalidToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	parsed := &TokenClaims{UserID: userID, Type: typ}

	if jtiStr, ok := claims["jti"].(string); ok {
		jti, err := uuid.Parse(jtiStr)
		if err != nil {
			return nil, ErrInvalidToken
		}
		parsed.JTI = jti
	}
	if tokenType == TokenTypeRefresh && parsed.JTI == uuid.Nil {
		return nil, ErrInvalidToken
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		parsed.ExpiresAt = exp.Time
	}

	return parsed, nil
}
