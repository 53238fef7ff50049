package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/coursefinder/internal/infrastructure/repositories"
	"gorm.io/driver/sqlite"
)

func TestAutoMigrate(t *testing.T) {
	db, err := OpenDialector(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, AutoMigrate(db))
	// idempotent across restarts
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"accounts", "courses", "enrollments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&repositories.DBEnrollment{}, "idx_enrollment_account_course"))
}

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Ping(context.Background()))

	mr.Close()
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping redis")
}
