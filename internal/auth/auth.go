// Package auth gates catalog changes on the caller's email domain.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultDomain is the organisation allowed to edit the catalog.
const DefaultDomain = "nubank.com.br"

var (
	// ErrDomainNotAllowed is returned for addresses outside the allowed domain.
	ErrDomainNotAllowed = errors.New("email domain not allowed")
	// ErrNoUser is returned when an identity is required but none was given.
	ErrNoUser = errors.New("no user email given")
)

// CheckDomain returns nil when email belongs to domain. The comparison
// ignores case and surrounding space.
func CheckDomain(email, domain string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))
	if email == "" {
		return ErrNoUser
	}
	if domain == "" || !strings.HasSuffix(email, "@"+domain) || strings.Count(email, "@") != 1 {
		return fmt.Errorf("%s: %w", email, ErrDomainNotAllowed)
	}
	return nil
}

// Gate decides whether a user may change data.
type Gate struct {
	Domain   string
	Required bool
}

// Allow checks email when the gate is required. An open gate allows anyone.
func (g Gate) Allow(email string) error {
	if !g.Required {
		return nil
	}
	return CheckDomain(email, g.Domain)
}
