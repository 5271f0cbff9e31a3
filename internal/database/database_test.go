package database

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/isdelr/storefront-seed/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	sqlitedriver "modernc.org/sqlite"
)

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	for _, table := range []any{&models.User{}, &models.Product{}, &models.SeedEvent{}} {
		require.True(t, db.Migrator().HasTable(table))
	}
	require.NoError(t, Ping(db))
	require.NoError(t, Close(db))

	// Reopening the same file keeps existing rows.
	db, err = New(path)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&models.Product{Title: "Mug", Price: 4.5}).Error)

	db2, err := New(path)
	require.NoError(t, err)
	defer Close(db2)
	var count int64
	require.NoError(t, db2.Model(&models.Product{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUniqueViolation(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.User{Username: "ada", Email: "a@x", Password: "p"}).Error)
	err = db.Create(&models.User{Username: "ada", Email: "b@x", Password: "q"}).Error
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err))

	translated := Translate(err)
	require.ErrorIs(t, translated, ErrUniqueViolation)
	require.Same(t, translated, Translate(translated))
}

func TestIsUniqueViolationOnOtherErrors(t *testing.T) {
	require.False(t, IsUniqueViolation(nil))
	require.False(t, IsUniqueViolation(errors.New("disk I/O error")))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", ErrUniqueViolation)))
	require.Nil(t, Translate(nil))
}

func TestORMErrorsReachLogAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.User{Username: "a", Email: "a@x", Password: "p"}).Error)
	buf.Reset()
	require.Error(t, db.Create(&models.User{Username: "a", Email: "b@x", Password: "q"}).Error)

	out := buf.String()
	require.Contains(t, out, `"level":"warn"`)
	require.Contains(t, out, "UNIQUE constraint failed")
	require.Contains(t, out, `"component":"gorm"`)
}

func TestConnectionsUsePureGoDriver(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer Close(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	_, ok := sqlDB.Driver().(*sqlitedriver.Driver)
	require.True(t, ok, "expected modernc.org/sqlite driver, got %T", sqlDB.Driver())
}
