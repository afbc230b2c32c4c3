package random

import (
	"crypto/rand"
	"math/big"
)

// Random generates random strings for token IDs and signing keys.
// Mockable so tests can pin the generated values.
type Random interface {
	String(length int, alphabet string) string
}

// CryptoRandom implements Random on crypto/rand
type CryptoRandom struct{}

var _ Random = (*CryptoRandom)(nil)

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String draws length characters uniformly from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			idx = big.NewInt(0)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}
