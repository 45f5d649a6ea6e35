package model

import "time"

// SeminarRole is the role a user holds inside a seminar.
type SeminarRole string

const (
	SeminarRoleInstructor  SeminarRole = "instructor"
	SeminarRoleParticipant SeminarRole = "participant"
)

// ParseSeminarRole accepts exactly "instructor" or "participant".
func ParseSeminarRole(s string) (SeminarRole, bool) {
	switch SeminarRole(s) {
	case SeminarRoleInstructor, SeminarRoleParticipant:
		return SeminarRole(s), true
	}
	return "", false
}

// MembershipStatus represents the lifecycle of a membership row.
type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusDropped MembershipStatus = "dropped"
)

// UserSeminar links a user to a seminar. There is at most one row per
// (user, seminar); dropped rows are kept and block re-application.
type UserSeminar struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_user_seminar;index:idx_user_role_status,priority:1"`
	SeminarID uint             `json:"seminar_id" gorm:"not null;uniqueIndex:idx_user_seminar;index:idx_seminar_role_status,priority:1"`
	Role      SeminarRole      `json:"role" gorm:"type:varchar(20);not null;index:idx_user_role_status,priority:2;index:idx_seminar_role_status,priority:2"`
	Status    MembershipStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index:idx_user_role_status,priority:3;index:idx_seminar_role_status,priority:3"`
	JoinedAt  time.Time        `json:"joined_at"`
	DroppedAt *time.Time       `json:"dropped_at,omitempty"`
	CreatedAt time.Time        `json:"-"`
	UpdatedAt time.Time        `json:"-"`

	// Relations
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Seminar Seminar `json:"-" gorm:"foreignKey:SeminarID"`
}

// IsActive reports whether the membership currently counts toward the seminar.
func (m *UserSeminar) IsActive() bool {
	return m.Status == MembershipStatusActive
}
