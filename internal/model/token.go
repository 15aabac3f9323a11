package model

import "time"

// Token maps an opaque bearer token to a username. Username is the primary
// key so a fresh login replaces the previous token instead of accumulating
// stale rows; a token stays valid until overwritten.
type Token struct {
	Username  string    `gorm:"primaryKey;size:64" json:"username"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
