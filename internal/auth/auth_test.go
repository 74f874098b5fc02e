package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDomain(t *testing.T) {
	tests := []struct {
		email string
		want  error
	}{
		{"yas@nubank.com.br", nil},
		{"  Yas@NUBANK.com.br ", nil},
		{"yas@gmail.com", ErrDomainNotAllowed},
		{"yas@evil-nubank.com.br", ErrDomainNotAllowed},
		{"a@b@nubank.com.br", ErrDomainNotAllowed},
		{"nubank.com.br", ErrDomainNotAllowed},
		{"", ErrNoUser},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := CheckDomain(tt.email, DefaultDomain)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCheckDomainAcceptsLeadingAt(t *testing.T) {
	assert.NoError(t, CheckDomain("x@example.org", "@example.org"))
	assert.ErrorIs(t, CheckDomain("x@example.org", ""), ErrDomainNotAllowed)
}

func TestGate(t *testing.T) {
	open := Gate{Domain: DefaultDomain}
	assert.NoError(t, open.Allow(""))

	closed := Gate{Domain: DefaultDomain, Required: true}
	assert.ErrorIs(t, closed.Allow(""), ErrNoUser)
	assert.NoError(t, closed.Allow("anita@nubank.com.br"))
}
