package models

import "time"

// UserToken is a single-use email verification token.
type UserToken struct {
	ID        int64     `json:"-"`
	UserID    int64     `json:"userId"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
