// Package validate collapses the corpus' scattered regex validators into
// one place. Each check has a boolean form and an error form; the error
// forms return sentinel errors callers can branch on.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidURL   = errors.New("invalid URL")
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	// E.164 with an optional leading +; 7 to 15 digits total.
	phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)
)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Email returns ErrInvalidEmail when s is not an email address.
func Email(s string) error {
	if !IsEmail(s) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, s)
	}
	return nil
}

// IsPhone reports whether s is an E.164-style phone number.
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// Phone returns ErrInvalidPhone when s is not a phone number.
func Phone(s string) error {
	if !IsPhone(s) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return nil
}

// IsURL reports whether s is an absolute http, https, ws or wss URL with a
// host.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return false
	}
	return u.Host != ""
}

// URL returns ErrInvalidURL when s is not an absolute URL.
func URL(s string) error {
	if !IsURL(s) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, s)
	}
	return nil
}
