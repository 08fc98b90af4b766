package model

import (
	"time"

	"gorm.io/datatypes"
)

// Entry — серверная модель записи дневника (одно посещение ресторана).
// Ключ составной: id задаёт клиент и он уникален только в пределах пользователя.
type Entry struct {
	UserID int64 `gorm:"primaryKey;autoIncrement:false"`
	ID     int64 `gorm:"primaryKey;autoIncrement:false"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	RestaurantName    string `gorm:"size:255;not null;index"`
	RestaurantAddress string `gorm:"size:512;not null"`
	VisitDate         string `gorm:"size:32;not null;index"` // YYYY-MM-DD
	OverallRating     int    `gorm:"not null"`
	Content           string `gorm:"type:text"`

	// Image — обложка (первое изображение) и legacy-поле старых записей.
	Image      *string        `gorm:"type:text"`
	ImagesJSON datatypes.JSON `gorm:"column:images_json"`

	Dishes []EntryDish `gorm:"foreignKey:UserID,EntryID;references:UserID,ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tags   []EntryTag  `gorm:"foreignKey:UserID,EntryID;references:UserID,ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// EntryDish — блюдо записи. Position сохраняет порядок, в котором блюда были переданы.
type EntryDish struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	UserID   int64  `gorm:"not null;index:idx_entry_dishes_entry,priority:1"`
	EntryID  int64  `gorm:"not null;index:idx_entry_dishes_entry,priority:2"`
	Position int    `gorm:"not null;default:0"`
	Dish     string `gorm:"size:255;not null"`
}

// EntryTag — тег записи.
type EntryTag struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	UserID   int64  `gorm:"not null;index:idx_entry_tags_entry,priority:1"`
	EntryID  int64  `gorm:"not null;index:idx_entry_tags_entry,priority:2"`
	Position int    `gorm:"not null;default:0"`
	Tag      string `gorm:"size:128;not null"`
}
