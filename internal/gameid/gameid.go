// Package gameid generates and checks table identifiers. Generated IDs are a
// UUIDv7 written as 26 lowercase Crockford base32 characters, so they sort by
// creation time.
package gameid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	Length   = 26
)

// New returns a fresh game ID.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system entropy source does.
		return Encode(uuid.New())
	}
	return Encode(id)
}

// Encode writes the 128 bits of id, left padded with two zero bits, as 26
// base32 characters.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := range 5 {
			v = v<<1 | bit(id, i*5+b-2)
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// MaxLength bounds IDs chosen by callers instead of generated by New.
const MaxLength = 64

// Validate accepts generated IDs and caller-chosen ones made of ASCII letters,
// digits, '-' and '_'. Such IDs are safe to use as file names and URL paths.
func Validate(s string) error {
	if s == "" {
		return errors.New("game id is empty")
	}
	if len(s) > MaxLength {
		return fmt.Errorf("game id must be at most %d characters, got %d", MaxLength, len(s))
	}
	for i := range len(s) {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("game id has invalid character %q at %d", c, i)
		}
	}
	return nil
}

func bit(id uuid.UUID, n int) byte {
	if n < 0 {
		return 0
	}
	return (id[n/8] >> (7 - n%8)) & 1
}
