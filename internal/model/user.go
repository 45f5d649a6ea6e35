package model

import "time"

// User represents a registered account. A user may hold an instructor profile,
// a participant profile, or both.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username     string     `json:"username" gorm:"size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	InstructorProfile  *InstructorProfile  `json:"instructor,omitempty" gorm:"foreignKey:UserID"`
	ParticipantProfile *ParticipantProfile `json:"participant,omitempty" gorm:"foreignKey:UserID"`
}

// IsInstructor reports whether the user may create and instruct seminars.
func (u *User) IsInstructor() bool {
	return u.InstructorProfile != nil
}

// IsParticipant reports whether the user may enroll in seminars.
func (u *User) IsParticipant() bool {
	return u.ParticipantProfile != nil
}

// InstructorProfile holds instructor-only attributes.
type InstructorProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"uniqueIndex;not null"`
	Company   string    `json:"company" gorm:"size:255"`
	Year      *int      `json:"year"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ParticipantProfile holds participant-only attributes.
type ParticipantProfile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"-" gorm:"uniqueIndex;not null"`
	University   string    `json:"university" gorm:"size:255"`
	IsRegistered bool      `json:"is_registered" gorm:"not null"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
