// services/activity_log.go - Append-only activity ledger
package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"ctfboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog records every login, attempt, solve, hint and admin action.
// Entries are only ever inserted; solved-puzzle and unlocked-hint sets
// are reconstructed by querying them back.
type ActivityLog struct {
	db *gorm.DB
}

func NewActivityLog(db *gorm.DB) *ActivityLog {
	return &ActivityLog{db: db}
}

// Append inserts one entry and returns it.
func (l *ActivityLog) Append(action models.Action, teamID string, value int, puzzle, detail string) (*models.LogEntry, error) {
	db, cancel := withTimeout(l.db)
	defer cancel()

	entry := models.LogEntry{
		ID:     uuid.NewString(),
		Action: action,
		Value:  value,
		TeamID: teamID,
		Puzzle: puzzle,
		Detail: detail,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, storeErr(err)
	}
	return &entry, nil
}

// RecordLogin appends a login entry carrying the client IP.
func (l *ActivityLog) RecordLogin(teamID, ip string) error {
	_, err := l.Append(models.ActionLogin, teamID, 0, "", ip)
	return err
}

// ListAll returns every entry, newest first. Audit and export use.
func (l *ActivityLog) ListAll() ([]models.LogEntry, error) {
	db, cancel := withTimeout(l.db)
	defer cancel()

	var entries []models.LogEntry
	if err := db.Order("timestamp DESC").Find(&entries).Error; err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}

// SolvedPuzzles returns the set of puzzles the team has a solve entry
// for.
func (l *ActivityLog) SolvedPuzzles(teamID string) ([]string, error) {
	db, cancel := withTimeout(l.db)
	defer cancel()

	var puzzles []string
	err := db.Model(&models.LogEntry{}).
		Distinct().
		Where("uid = ? AND action = ?", teamID, models.ActionSolve).
		Pluck("puzzle", &puzzles).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return puzzles, nil
}

// UnlockedHints returns the hint contents the team has already paid for
// on a puzzle, in log order.
func (l *ActivityLog) UnlockedHints(teamID, puzzle string) ([]string, error) {
	db, cancel := withTimeout(l.db)
	defer cancel()

	var hints []string
	err := db.Model(&models.LogEntry{}).
		Where("uid = ? AND puzzle = ? AND action = ?", teamID, puzzle, models.ActionHint).
		Order("timestamp ASC").
		Pluck("detail", &hints).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return hints, nil
}

// ExportCSV writes every entry to w as CSV, header row first, oldest
// entry first.
func (l *ActivityLog) ExportCSV(w io.Writer) error {
	db, cancel := withTimeout(l.db)
	defer cancel()

	var entries []models.LogEntry
	if err := db.Order("timestamp ASC").Find(&entries).Error; err != nil {
		return storeErr(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "action", "value", "uid", "puzzle", "detail", "timestamp"}); err != nil {
		return err
	}

	for i := range entries {
		e := &entries[i]
		row := []string{
			e.ID,
			string(e.Action),
			strconv.Itoa(e.Value),
			e.TeamID,
			e.Puzzle,
			e.Detail,
			e.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
