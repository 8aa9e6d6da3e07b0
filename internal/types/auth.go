package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload embedded in a signed access token. The user identifier
// is the only application claim; everything else is standard JWT metadata.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
