// Package proofofwork implements the sha256 leading-zeroes verification
// method. The member searches for a decimal nonce n such that
// hex(sha256(secret + n)) starts with difficulty '0' characters.
package proofofwork

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/uvensys/cerberus/internal"
	chall "github.com/uvensys/cerberus/lib/challenge"
)

func init() {
	chall.Register("sha256", Impl{})
}

type Impl struct{}

// Check validates a candidate nonce. The hash is computed over the nonce
// exactly as submitted, concatenated to the secret with no separator. The
// nonce is never parsed into a native integer, so leading zeros and digit
// strings wider than 64 bits are hashed as-is. This is the wire contract
// with the solver page and must not change.
func (Impl) Check(secret, nonce string, difficulty int) error {
	if nonce == "" {
		return fmt.Errorf("%w: nonce is empty", chall.ErrInvalidFormat)
	}

	for _, r := range nonce {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: nonce %q is not a non-negative integer", chall.ErrInvalidFormat, nonce)
		}
	}

	digest := internal.SHA256sum(secret + nonce)

	if !strings.HasPrefix(digest, strings.Repeat("0", difficulty)) {
		return fmt.Errorf("%w: wanted %d leading zeros but got %s", chall.ErrFailed, difficulty, digest)
	}

	return nil
}

// Find brute-forces the smallest nonce solving the challenge, trying at most
// max candidates starting from zero. It mirrors what the solver page does
// and backs the powsolve tool and the tests.
func Find(secret string, difficulty int, max uint64) (uint64, bool) {
	target := strings.Repeat("0", difficulty)

	for n := uint64(0); n < max; n++ {
		digest := internal.SHA256sum(secret + strconv.FormatUint(n, 10))
		if strings.HasPrefix(digest, target) {
			return n, true
		}
	}

	return 0, false
}

// URL builds the personalised solver page link for a challenge. The page
// reads the secret from m and the difficulty from d.
func URL(base, secret string, difficulty int) string {
	values := url.Values{}
	values.Set("m", secret)
	values.Set("d", strconv.Itoa(difficulty))

	return base + "?" + values.Encode()
}
