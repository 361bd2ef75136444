package challenge

import (
	"crypto/rand"
	"fmt"
)

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// newSecret returns a random alphanumeric token of length n from the
// process-wide cryptographic randomness source. Bytes past the largest
// multiple of the alphabet size get rejected to keep the character
// distribution uniform.
func newSecret(n int) (string, error) {
	const limit = 256 - 256%len(secretAlphabet)

	result := make([]byte, 0, n)
	buf := make([]byte, n)

	for len(result) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("challenge: can't read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			result = append(result, secretAlphabet[int(b)%len(secretAlphabet)])
			if len(result) == n {
				break
			}
		}
	}

	return string(result), nil
}
