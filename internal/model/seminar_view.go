package model

import "time"

// SeminarMember is a user as shown inside a seminar.
type SeminarMember struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	University string    `json:"university,omitempty"`
	Company    string    `json:"company,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}

// SeminarDetail is the seminar aggregate returned by read, create, modify,
// apply and drop.
type SeminarDetail struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Capacity     int             `json:"capacity"`
	Count        int             `json:"count"`
	Time         string          `json:"time"`
	Online       bool            `json:"online"`
	OwnerID      uint            `json:"owner_id"`
	Instructors  []SeminarMember `json:"instructors"`
	Participants []SeminarMember `json:"participants"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SeminarSummary is one row of the seminar listing.
type SeminarSummary struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Instructors      []SeminarMember `json:"instructors"`
	ParticipantCount int64           `json:"participant_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SeminarPage is a page of seminar summaries.
type SeminarPage struct {
	Items    []SeminarSummary `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int64            `json:"total"`
}

// UserView is the public shape of a user.
type UserView struct {
	ID          uint                `json:"id"`
	Email       string              `json:"email"`
	Username    string              `json:"username"`
	LastLogin   *time.Time          `json:"last_login,omitempty"`
	CreatedAt   time.Time           `json:"date_joined"`
	Instructor  *InstructorProfile  `json:"instructor,omitempty"`
	Participant *ParticipantProfile `json:"participant,omitempty"`
}

// NewUserView builds the public shape of u.
func NewUserView(u *User) *UserView {
	return &UserView{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		Instructor:  u.InstructorProfile,
		Participant: u.ParticipantProfile,
	}
}
