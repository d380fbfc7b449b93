package model

import "time"

// Comment is a free-form review left by a user.
type Comment struct {
	ID        int64
	UserID    int64
	Username  string
	Text      string
	CreatedAt time.Time
}
