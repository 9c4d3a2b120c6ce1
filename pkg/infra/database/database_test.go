package database_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/folioworks/folio/pkg/infra/database"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memoryConfig(t *testing.T) *database.Config {
	return &database.Config{
		Driver: database.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
}

func TestNewDB_AppliesRegisteredMigrations(t *testing.T) {
	calls := 0
	database.RegisterMigration(database.Migration{
		ID:   "99990101_test_table",
		Name: "test table",
		Up: func(db *gorm.DB) error {
			calls++
			return db.Exec(`CREATE TABLE IF NOT EXISTS scratch (id INTEGER PRIMARY KEY)`).Error
		},
	})

	cfg := memoryConfig(t)
	db, err := database.NewDB(logrus.New(), cfg)
	require.NoError(t, err)
	defer db.Close()

	ids, err := db.Migrations().Applied(context.Background())
	require.NoError(t, err)
	assert.Contains(t, ids, "99990101_test_table")

	// a second pass is a no-op
	applied, err := db.Migrations().ApplyPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, 1, calls)
	assert.True(t, db.Migrator().HasTable("scratch"))
}

func TestRegisterMigration_DuplicatePanics(t *testing.T) {
	m := database.Migration{ID: "99990102_dup", Name: "dup", Up: func(*gorm.DB) error { return nil }}
	database.RegisterMigration(m)
	assert.Panics(t, func() { database.RegisterMigration(m) })
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := database.NewDB(logrus.New(), &database.Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrations_Rollback(t *testing.T) {
	database.RegisterMigration(database.Migration{
		ID:   "99990200_no_down",
		Name: "one way",
		Up:   func(*gorm.DB) error { return nil },
	})
	database.RegisterMigration(database.Migration{
		ID:   "99990201_rollback_sample",
		Name: "rollback sample",
		Up: func(db *gorm.DB) error {
			return db.Exec(`CREATE TABLE IF NOT EXISTS rollback_sample (id INTEGER PRIMARY KEY)`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS rollback_sample`).Error
		},
	})

	db, err := database.NewDB(logrus.New(), memoryConfig(t))
	require.NoError(t, err)
	defer db.Close()
	require.True(t, db.Migrator().HasTable("rollback_sample"))

	ctx := context.Background()
	reverted, err := db.Migrations().Rollback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"99990201_rollback_sample"}, reverted)
	assert.False(t, db.Migrator().HasTable("rollback_sample"))

	ids, err := db.Migrations().Applied(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "99990201_rollback_sample")

	_, err = db.Migrations().Rollback(ctx, 1)
	assert.ErrorIs(t, err, database.ErrNoDownMigration)
}
