package test

import (
	"math/rand"
	"strings"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns an alphanumeric string of length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)

	var b strings.Builder
	n := minLen + rand.Intn(maxLen-minLen+1)
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphanumeric[rand.Intn(len(alphanumeric))])
	}
	return b.String()
}

// Credentials is a registration triple that passes input validation.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// RandomCredentials generates a fresh valid account.
func RandomCredentials() Credentials {
	username := RandomASCIIString(5, 16)
	return Credentials{
		Username: username,
		Email:    strings.ToLower(username + "@" + RandomASCIIString(4, 8) + ".test"),
		Password: RandomASCIIString(8, 32),
	}
}
