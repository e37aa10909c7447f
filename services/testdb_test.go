package services

import (
	"fmt"
	"testing"

	"ctfboard/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database, one per test, with the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Team{},
		&models.LogEntry{},
		&models.Announcement{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// createTeam registers a team through the service and returns its id.
func createTeam(t *testing.T, ts *TeamService, name, division string) string {
	t.Helper()
	id, err := ts.Create(name, "pw123", division, "", "", "")
	require.NoError(t, err)
	return id
}
