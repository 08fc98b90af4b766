package model

import "time"

// WishlistItem — блюдо, которое пользователь хочет попробовать.
type WishlistItem struct {
	UserID int64 `gorm:"primaryKey;autoIncrement:false"`
	ID     int64 `gorm:"primaryKey;autoIncrement:false"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Dish       string `gorm:"size:255;not null"`
	Restaurant string `gorm:"size:255"`
	Notes      string `gorm:"type:text"`
	Priority   string `gorm:"size:16;not null;default:medium;index"`
	AddedDate  string `gorm:"size:32;not null"` // YYYY-MM-DD

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
