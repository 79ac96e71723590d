package database

import (
	"testing"

	"github.com/mangomarket/onboard/services/account"
	"github.com/mangomarket/onboard/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProvideDatabase(t *testing.T) {
	t.Run("sqlite with auto-migration", func(t *testing.T) {
		cfg := testutils.GetTestConfig()

		db, err := ProvideDatabase(*cfg, WithModels(&account.User{}), nil)
		require.NoError(t, err)
		assert.True(t, db.Migrator().HasTable("users"))
	})

	t.Run("migration can be disabled", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.Database.AutoMigrate = false

		db, err := ProvideDatabase(*cfg, WithModels(&account.User{}), nil)
		require.NoError(t, err)
		assert.False(t, db.Migrator().HasTable("users"))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.Database.Driver = "oracle"

		_, err := ProvideDatabase(*cfg, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("duplicate key errors are translated", func(t *testing.T) {
		cfg := testutils.GetTestConfig()

		db, err := ProvideDatabase(*cfg, WithModels(&account.User{}), nil)
		require.NoError(t, err)

		require.NoError(t, db.Create(&account.User{ID: "1", Email: "a@example.com", Password: "x"}).Error)
		err = db.Create(&account.User{ID: "2", Email: "a@example.com", Password: "x"}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}
