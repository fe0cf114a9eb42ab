package repository

import (
	"crypto/rand"
	"strings"
)

// codeAlphabet is the set of characters reservation codes are drawn
// from.  It is uppercase letters and digits with the visually
// confusable 0/O and 1/I removed, so a code can be read over a counter
// or typed from a phone screen without ambiguity.  The alphabet has
// exactly 32 characters, which keeps the byte-to-character mapping in
// Issue free of modulo bias.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// codeLength is the number of characters in an issued code.  Six
// characters over a 32-symbol alphabet give roughly a billion possible
// codes, which makes collisions over the expected reservation volume
// negligible; the rare collision is handled by the caller retrying
// against the store.
const codeLength = 6

// CodeIssuer draws random reservation codes.  It is stateless:
// uniqueness is only meaningful relative to the reservation store, so
// the issue-and-insert loop in the lifecycle engine is what actually
// guarantees no two reservations share a code.
type CodeIssuer struct{}

// Issue returns a fresh random code.  The only error source is the
// operating system's entropy pool.
func (CodeIssuer) Issue() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// NormalizeCode maps user-supplied code input to its canonical form:
// trimmed and uppercased.  Lookups for "abc123", "ABC123" and "Abc123"
// all resolve to the same reservation.  The clients already uppercase
// before sending; normalizing again here is defense in depth.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
