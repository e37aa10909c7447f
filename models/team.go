// models/team.go
package models

import (
	"strings"
	"time"
)

// Team is a registered competing account. IDs are opaque UUIDs so that
// account identifiers are not guessable.
type Team struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Password    string     `json:"-" gorm:"not null"`
	DisplayName string     `json:"display_name" gorm:"size:100"`
	Affiliation string     `json:"affiliation" gorm:"size:200"`
	Emails      string     `json:"emails" gorm:"size:500"`
	Division    string     `json:"division" gorm:"size:50;index"`
	Score       int        `json:"score" gorm:"default:0"`
	HintCredit  int        `json:"hint_credit" gorm:"default:0"`
	IsAdmin     bool       `json:"is_admin" gorm:"column:admin;default:false"`
	IsBanned    bool       `json:"is_banned" gorm:"column:banned;default:false;index"`
	FinishTime  *time.Time `json:"finish_time"`
	Finalized   bool       `json:"finalized" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamView is the sanitized projection returned to the team itself.
// It never carries the password hash.
type TeamView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Affiliation string `json:"affiliation"`
	Division    string `json:"division"`
	Emails      string `json:"emails"`
	Score       int    `json:"score"`
	HintCredit  int    `json:"hint_credit"`
	IsAdmin     bool   `json:"is_admin"`
	IsBanned    bool   `json:"is_banned"`
}

// TeamSummary is the projection used for listings and scoreboards.
type TeamSummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	DisplayName string     `json:"display_name"`
	Affiliation string     `json:"affiliation"`
	Division    string     `json:"division,omitempty"`
	Score       int        `json:"score"`
	IsAdmin     bool       `json:"is_admin,omitempty"`
	IsBanned    bool       `json:"is_banned,omitempty"`
	FinishTime  *time.Time `json:"finish_time,omitempty"`
	Finalized   bool       `json:"finalized"`
}

// View builds the sanitized projection. Names are trimmed on the way out
// because legacy rows carry space-padded values.
func (t *Team) View() TeamView {
	return TeamView{
		ID:          t.ID,
		Name:        strings.TrimSpace(t.Name),
		DisplayName: strings.TrimSpace(t.DisplayName),
		Affiliation: t.Affiliation,
		Division:    t.Division,
		Emails:      t.Emails,
		Score:       t.Score,
		HintCredit:  t.HintCredit,
		IsAdmin:     t.IsAdmin,
		IsBanned:    t.IsBanned,
	}
}

func (t *Team) Summary() TeamSummary {
	return TeamSummary{
		ID:          t.ID,
		Name:        strings.TrimSpace(t.Name),
		DisplayName: strings.TrimSpace(t.DisplayName),
		Affiliation: t.Affiliation,
		Division:    t.Division,
		Score:       t.Score,
		IsAdmin:     t.IsAdmin,
		IsBanned:    t.IsBanned,
		FinishTime:  t.FinishTime,
		Finalized:   t.Finalized,
	}
}
