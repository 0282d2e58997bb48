// Package security holds the random-value helpers used for generated
// credentials.
package security

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// PasswordAlphabet leaves out characters that are easy to misread when a
// password is read aloud or copied by hand (0/O, 1/l/I).
const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns an unbiased string of length characters drawn from
// alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	return RandomStringFrom(rand.Reader, length, alphabet)
}

// RandomStringFrom is RandomString with an explicit entropy source.
func RandomStringFrom(source io.Reader, length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	symbols := []rune(alphabet)
	limit := big.NewInt(int64(len(symbols)))
	out := make([]rune, length)
	for index := range out {
		position, err := rand.Int(source, limit)
		if err != nil {
			return "", err
		}
		out[index] = symbols[position.Int64()]
	}
	return string(out), nil
}
