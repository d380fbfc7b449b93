package model

import "time"

// User represents a registered shop customer.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Token        string
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
}

// HasSession reports whether the user currently holds a session token.
func (u *User) HasSession() bool {
	return u != nil && u.Token != ""
}
