package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seminar/internal/model"
)

// UserRepository defines persistence operations for users and their role profiles.
type UserRepository interface {
	// Create inserts the user together with any profiles attached to it.
	Create(ctx context.Context, user *model.User) error
	// Update saves the user row and its attached profiles.
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	// FindByIDForUpdate locks the user row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	CreateParticipantProfile(ctx context.Context, profile *model.ParticipantProfile) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) withProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("InstructorProfile").
		Preload("ParticipantProfile")
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.withProfiles(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.withProfiles(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.withProfiles(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *userRepository) CreateParticipantProfile(ctx context.Context, profile *model.ParticipantProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}
