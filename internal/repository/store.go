package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is returned when a unique index rejects an insert. It requires
// the gorm connection to be opened with TranslateError.
var ErrDuplicate = gorm.ErrDuplicatedKey

// IsNotFound reports whether err means "no such row".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store groups the repositories that make up one unit of work.
type Store interface {
	Users() UserRepository
	Seminars() SeminarRepository
	Memberships() MembershipRepository
	// WithTransaction runs fn against a store bound to one database
	// transaction. Returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db          *gorm.DB
	users       UserRepository
	seminars    SeminarRepository
	memberships MembershipRepository
}

// NewStore builds a GORM-backed store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		users:       NewUserRepository(db),
		seminars:    NewSeminarRepository(db),
		memberships: NewMembershipRepository(db),
	}
}

func (s *gormStore) Users() UserRepository             { return s.users }
func (s *gormStore) Seminars() SeminarRepository       { return s.seminars }
func (s *gormStore) Memberships() MembershipRepository { return s.memberships }

// WithTransaction executes a function within a database transaction.
func (s *gormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
