// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"ctfboard/models"

	"gorm.io/gorm"
)

// Migrate runs all schema migrations.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.Team{},
		&models.LogEntry{},
		&models.Announcement{},
	); err != nil {
		return err
	}

	createIndexes(db)

	log.Println("Migrations completed")
	return nil
}

// createIndexes creates the query-path indexes AutoMigrate does not
// cover.
func createIndexes(db *gorm.DB) {
	// Division scoreboard ordering
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_division_ranking ON teams(division, banned, finish_time, score)")

	// Solved-puzzle and unlocked-hint reconstruction
	db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_uid_action ON logs(uid, action)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_uid_puzzle_action ON logs(uid, puzzle, action)")

	// Audit listing, newest first
	db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_announcements_timestamp ON announcements(timestamp DESC)")
}
