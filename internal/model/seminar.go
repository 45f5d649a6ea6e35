package model

import "time"

// Seminar is a scheduled course run by one owning instructor.
type Seminar struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	Count     int       `json:"count" gorm:"not null"`
	Time      string    `json:"time" gorm:"size:5;not null"` // HH:MM
	Online    bool      `json:"online" gorm:"not null"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}
