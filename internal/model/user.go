package model

import "time"

// User — учётная запись владельца дневника.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:64;not null;uniqueIndex"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
