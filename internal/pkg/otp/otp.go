package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeLifetime is how long a signup code stays valid.
const CodeLifetime = 10 * time.Minute

// NewCode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999].
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
