// models/log_entry.go
package models

import "time"

// Action is the kind tag of an activity log entry. Each kind fixes how
// Value, Puzzle and Detail are interpreted.
type Action string

const (
	ActionLogin   Action = "login"   // Detail = client IP, Value unused
	ActionAttempt Action = "attempt" // Detail = submitted answer, Value = point value (0)
	ActionSolve   Action = "solve"   // Detail = submitted answer, Value = points awarded
	ActionHint    Action = "hint"    // Detail = hint content, Value = -deduction
	ActionAdmin   Action = "admin"   // Detail = human-readable description
	ActionBan     Action = "ban"     // Detail = human-readable description
	ActionUnban   Action = "unban"   // Detail = human-readable description
)

// LogEntry is one row of the append-only activity ledger. Rows are only
// ever inserted; solved-puzzle sets and unlocked-hint sets are rebuilt by
// querying this table.
type LogEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Action    Action    `json:"action" gorm:"not null;size:20;index"`
	Value     int       `json:"value" gorm:"default:0"`
	TeamID    string    `json:"uid" gorm:"column:uid;size:36;index"`
	Puzzle    string    `json:"puzzle" gorm:"size:100;index"`
	Detail    string    `json:"detail" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

func (LogEntry) TableName() string {
	return "logs"
}
