package verifycode

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generate returns a uniformly sampled 6-digit one-time code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Match compares a submitted code with the stored one in constant time.
// A nil stored code (already consumed or never issued) never matches.
func Match(stored *string, submitted string) bool {
	if stored == nil || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(submitted)) == 1
}
