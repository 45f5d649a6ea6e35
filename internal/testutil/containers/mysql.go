//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"gorm.io/gorm"

	"seminar/internal/db"
)

// NewMySQL starts a throwaway MySQL 8, migrates the schema and returns the
// gorm handle.
func NewMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("seminar"),
		tcmysql.WithUsername("seminar"),
		tcmysql.WithPassword("seminar"),
	)
	if err != nil {
		t.Fatalf("start mysql container: %v", err)
	}
	testcontainers.CleanupContainer(t, container)

	dsn, err := container.ConnectionString(ctx, "charset=utf8mb4", "parseTime=True", "loc=UTC")
	if err != nil {
		t.Fatalf("mysql connection string: %v", err)
	}

	gormDB, err := db.NewMySQL(dsn, db.Options{MaxOpenConns: 20, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}
