package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// New generates a uniformly random 6-digit numeric code in
// [100000, 999999].
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
