package repository

import (
	"context"

	"gorm.io/gorm"

	"seminar/internal/model"
)

// MembershipRepository defines persistence for user_seminars rows.
type MembershipRepository interface {
	Create(ctx context.Context, m *model.UserSeminar) error
	Update(ctx context.Context, m *model.UserSeminar) error
	// Find returns the row for (user, seminar) regardless of status.
	Find(ctx context.Context, userID, seminarID uint) (*model.UserSeminar, error)
	CountActiveByUser(ctx context.Context, userID uint, role model.SeminarRole) (int64, error)
	CountActiveBySeminar(ctx context.Context, seminarID uint, role model.SeminarRole) (int64, error)
	// ListActive returns active rows of the given seminars with users and profiles loaded,
	// ordered by join time.
	ListActive(ctx context.Context, seminarIDs []uint, role model.SeminarRole) ([]model.UserSeminar, error)
	// CountActiveBySeminars counts active rows per seminar for one role.
	CountActiveBySeminars(ctx context.Context, seminarIDs []uint, role model.SeminarRole) (map[uint]int64, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *model.UserSeminar) error {
	return r.db.WithContext(ctx).Omit("User", "Seminar").Create(m).Error
}

func (r *membershipRepository) Update(ctx context.Context, m *model.UserSeminar) error {
	return r.db.WithContext(ctx).Omit("User", "Seminar").Save(m).Error
}

func (r *membershipRepository) Find(ctx context.Context, userID, seminarID uint) (*model.UserSeminar, error) {
	var m model.UserSeminar
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND seminar_id = ?", userID, seminarID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) CountActiveByUser(ctx context.Context, userID uint, role model.SeminarRole) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserSeminar{}).
		Where("user_id = ? AND role = ? AND status = ?", userID, role, model.MembershipStatusActive).
		Count(&n).Error
	return n, err
}

func (r *membershipRepository) CountActiveBySeminar(ctx context.Context, seminarID uint, role model.SeminarRole) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserSeminar{}).
		Where("seminar_id = ? AND role = ? AND status = ?", seminarID, role, model.MembershipStatusActive).
		Count(&n).Error
	return n, err
}

func (r *membershipRepository) ListActive(ctx context.Context, seminarIDs []uint, role model.SeminarRole) ([]model.UserSeminar, error) {
	if len(seminarIDs) == 0 {
		return nil, nil
	}
	var rows []model.UserSeminar
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.InstructorProfile").
		Preload("User.ParticipantProfile").
		Where("seminar_id IN ? AND role = ? AND status = ?", seminarIDs, role, model.MembershipStatusActive).
		Order("joined_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *membershipRepository) CountActiveBySeminars(ctx context.Context, seminarIDs []uint, role model.SeminarRole) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(seminarIDs))
	if len(seminarIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		SeminarID uint
		N         int64
	}
	err := r.db.WithContext(ctx).Model(&model.UserSeminar{}).
		Select("seminar_id, COUNT(*) AS n").
		Where("seminar_id IN ? AND role = ? AND status = ?", seminarIDs, role, model.MembershipStatusActive).
		Group("seminar_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.SeminarID] = row.N
	}
	return counts, nil
}
