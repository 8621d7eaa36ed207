// Package secrets generates random passwords and opaque tokens. All
// randomness comes from crypto/rand; math/rand is never used here.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}<>?"
)

// PasswordOptions selects the character classes a password draws from.
// At least one class must be enabled.
type PasswordOptions struct {
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool
}

// DefaultPasswordOptions enables every class.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{Lower: true, Upper: true, Digits: true, Symbols: true}
}

// Password generates a random password of the given length. Every enabled
// character class is guaranteed at least one occurrence when length allows.
func Password(length int, opts PasswordOptions) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}

	var classes []string
	if opts.Lower {
		classes = append(classes, lowerChars)
	}
	if opts.Upper {
		classes = append(classes, upperChars)
	}
	if opts.Digits {
		classes = append(classes, digitChars)
	}
	if opts.Symbols {
		classes = append(classes, symbolChars)
	}
	if len(classes) == 0 {
		return "", errors.New("no character classes enabled")
	}

	alphabet := strings.Join(classes, "")
	out := make([]byte, length)

	// Seed one character per class first so each enabled class appears.
	i := 0
	for ; i < len(classes) && i < length; i++ {
		ch, err := randomChar(classes[i])
		if err != nil {
			return "", err
		}
		out[i] = ch
	}
	for ; i < length; i++ {
		ch, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}

	if err := shuffle(out); err != nil {
		return "", err
	}
	return string(out), nil
}

// HexToken returns a random token of byteLen random bytes, hex encoded.
func HexToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", errors.New("token length must be positive")
	}
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// UUIDToken returns a random version-4 UUID string.
func UUIDToken() string {
	return uuid.NewString()
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("read random index: %w", err)
	}
	return alphabet[n.Int64()], nil
}

// shuffle is a Fisher-Yates pass driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
