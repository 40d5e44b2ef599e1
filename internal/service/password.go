package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword produces a bcrypt hash of the plaintext. The plaintext is
// hashed at the first opportunity so it never reaches a ledger or log.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// checkPassword reports whether the plaintext matches the stored hash.
func checkPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// normalizeEmail case-normalizes an email so the same mailbox always keys
// the same rows.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
