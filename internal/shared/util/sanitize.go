package util

import (
	"errors"
	"strings"
)

const maxDomainLen = 64

// ErrInvalidDomain is returned for domain names that cannot map to a catalog key.
var ErrInvalidDomain = errors.New("invalid domain")

// SanitizeDomain lowercases and trims a catalog domain name and rejects
// anything outside [a-z0-9_-], which also rules out path traversal.
func SanitizeDomain(name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" || len(s) > maxDomainLen {
		return "", ErrInvalidDomain
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", ErrInvalidDomain
		}
	}
	return s, nil
}
