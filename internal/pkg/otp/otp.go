// Package otp generates one-time login codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Digits is the length of generated codes.
const Digits = 6

// GenerateCode returns a numeric one-time code. Each digit is drawn
// uniformly from 0-9 with crypto/rand, so the code carries no modulo bias.
func GenerateCode() (string, error) {
	code := make([]byte, Digits)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate otp digit: %w", err)
		}
		code[i] = '0' + byte(n.Int64())
	}
	return string(code), nil
}
