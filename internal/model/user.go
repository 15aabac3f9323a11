package model

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
