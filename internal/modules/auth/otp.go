package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateVerificationCode returns a uniform random 6-digit code,
// zero-padded.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
