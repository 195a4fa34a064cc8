package models

import (
	"strings"
	"testing"

	"galeria/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points db.Instance at a fresh in-memory database named after
// the test, so suites stay isolated from each other.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	db.Instance = gdb
	migrate()
}

func approvedUser(t *testing.T, name string, role Role) *User {
	t.Helper()
	u, err := UserCreate(name, "", "secret", role)
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T {
	return &v
}
