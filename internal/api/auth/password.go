package auth

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// hashCost reads the bcrypt work factor from HASH_COST on every call, so
// operators can raise it without a redeploy. Out-of-range or missing values
// fall back to the bcrypt default.
func hashCost() int {
	v := os.Getenv("HASH_COST")
	if v == "" {
		return bcrypt.DefaultCost
	}
	cost, err := strconv.Atoi(v)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// HashPassword returns the one-way bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost())
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
