package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aeschyllus/expensetracker-be/config"
	"github.com/aeschyllus/expensetracker-be/internal/api"
	"github.com/aeschyllus/expensetracker-be/internal/types"
)

// TokenIssuer signs and verifies the compact bearer tokens carrying the
// authenticated user's identifier. Tokens are stateless; nothing is stored
// server-side.
type TokenIssuer struct {
	cfg config.JWTConfig
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue produces a signed HS256 token with the user id claim plus the standard
// issued-at/expiry metadata.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTokenTTL)),
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. A bad signature, malformed
// token, expiry, or issuer/audience mismatch all surface as the same
// unauthenticated failure; callers never need to distinguish them.
func (t *TokenIssuer) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", api.ErrUnauthenticated)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token invalid: %w", api.ErrUnauthenticated)
	}
	if claims.Issuer != t.cfg.Issuer {
		return nil, fmt.Errorf("token issuer mismatch: %w", api.ErrUnauthenticated)
	}
	if t.cfg.Audience != "" && !hasAudience(claims.Audience, t.cfg.Audience) {
		return nil, fmt.Errorf("token audience mismatch: %w", api.ErrUnauthenticated)
	}
	return claims, nil
}

func hasAudience(claimsAudience jwt.ClaimStrings, expected string) bool {
	for _, aud := range claimsAudience {
		if aud == expected {
			return true
		}
	}
	return false
}
