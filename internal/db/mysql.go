package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seminar/internal/model"
)

// Options tune the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          zerolog.Logger
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, opts Options) (*gorm.DB, error) {
	return Open(mysql.Open(dsn), opts)
}

// Open connects through any gorm dialector. Driver errors are translated so
// repositories can match gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zerologWriter{opts.Logger}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.InstructorProfile{},
		&model.ParticipantProfile{},
		&model.Seminar{},
		&model.UserSeminar{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type zerologWriter struct {
	l zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.l.Warn().Str("component", "gorm").Msgf(format, args...)
}
