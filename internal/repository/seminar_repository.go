package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seminar/internal/model"
)

// SeminarOrder selects the creation-time sort of a listing.
type SeminarOrder string

const (
	SeminarOrderLatest   SeminarOrder = "latest"
	SeminarOrderEarliest SeminarOrder = "earliest"
)

// SeminarQuery filters and windows a seminar listing.
type SeminarQuery struct {
	// Name is a case-insensitive substring. Empty matches everything.
	Name   string
	Order  SeminarOrder
	Offset int
	Limit  int
}

// SeminarRepository defines seminar persistence operations.
type SeminarRepository interface {
	Create(ctx context.Context, seminar *model.Seminar) error
	Update(ctx context.Context, seminar *model.Seminar) error
	FindByID(ctx context.Context, id uint) (*model.Seminar, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Seminar, error)
	// List returns one window of matching seminars and the total match count.
	List(ctx context.Context, q SeminarQuery) ([]model.Seminar, int64, error)
}

type seminarRepository struct {
	db *gorm.DB
}

// NewSeminarRepository creates a new seminar repository.
func NewSeminarRepository(db *gorm.DB) SeminarRepository {
	return &seminarRepository{db: db}
}

func (r *seminarRepository) Create(ctx context.Context, seminar *model.Seminar) error {
	return r.db.WithContext(ctx).Create(seminar).Error
}

func (r *seminarRepository) Update(ctx context.Context, seminar *model.Seminar) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(seminar).Error
}

func (r *seminarRepository) FindByID(ctx context.Context, id uint) (*model.Seminar, error) {
	var seminar model.Seminar
	if err := r.db.WithContext(ctx).First(&seminar, id).Error; err != nil {
		return nil, err
	}
	return &seminar, nil
}

func (r *seminarRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Seminar, error) {
	var seminar model.Seminar
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seminar, id).Error; err != nil {
		return nil, err
	}
	return &seminar, nil
}

func (r *seminarRepository) List(ctx context.Context, q SeminarQuery) ([]model.Seminar, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Seminar{})
	if q.Name != "" {
		base = base.Where("LOWER(name) LIKE ?", "%"+EscapeLike(strings.ToLower(q.Name))+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if q.Order == SeminarOrderEarliest {
		dir = "ASC"
	}

	var seminars []model.Seminar
	err := base.Session(&gorm.Session{}).
		Order("created_at " + dir).
		Order("id " + dir).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&seminars).Error
	if err != nil {
		return nil, 0, err
	}
	return seminars, total, nil
}

// EscapeLike makes %, _ and the escape character itself match literally in a
// MySQL LIKE pattern.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
