// Package otp generates numeric one-time passcodes from a cryptographically
// secure source. Codes are fixed-length digit strings; leading zeros are
// allowed, so every code carries the full keyspace of 10^length values.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var ten = big.NewInt(10)

// Generate returns a numeric passcode with exactly length digits drawn from
// crypto/rand. Returns an error if length is not positive or the random
// source fails.
func Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("otp length must be positive, got %d", length)
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("error reading random digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}
