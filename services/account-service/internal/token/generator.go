// Package token produces the opaque single-use tokens mailed out for account
// activation and password resets.
package token

import (
	"crypto/rand"
	"math/big"
)

const (
	// Length of every generated token. 32 alphanumeric characters give far
	// more entropy than the expected account-creation rate needs; the unique
	// index in the store is the backstop, not the sole defense.
	Length = 32

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generator produces cryptographically random opaque token strings.
type Generator struct{}

// NewGenerator creates a token Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a fresh token drawn from crypto/rand over the
// alphanumeric alphabet.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(alphabet)))

	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}

	return string(buf), nil
}
