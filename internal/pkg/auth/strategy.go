package auth

import "errors"

var ErrInvalidToken = errors.New("invalid session token")

// Strategy issues opaque session tokens and checks their integrity.
// A token that passes ParseToken still has to match the value stored for the user.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
}

// Options tunes token issuing.
type Options struct {
	Issuer string
}
