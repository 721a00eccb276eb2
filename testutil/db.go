// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"gamecenter/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
// The pool is capped at one connection so every query sees the same memory
// database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(sqlite.Open(":memory:"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}
