// services/ledger.go - Scoring and hint-credit ledger
package services

import (
	"errors"
	"fmt"

	"ctfboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger mutates score and hint-credit balances. Every balance change
// commits in the same transaction as the log entry that justifies it,
// so the counter and the log never disagree.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// RecordAttempt logs a submission. A successful attempt is recorded as a
// solve and the team's score counter is incremented by value inside the
// same transaction.
func (l *Ledger) RecordAttempt(teamID, puzzle, answer string, value int, success bool) (*models.LogEntry, error) {
	db, cancel := withTimeout(l.db)
	defer cancel()

	action := models.ActionAttempt
	if success {
		action = models.ActionSolve
	}

	entry := models.LogEntry{
		ID:     uuid.NewString(),
		Action: action,
		Value:  value,
		TeamID: teamID,
		Puzzle: puzzle,
		Detail: answer,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if !success {
			return nil
		}
		return tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("score", gorm.Expr("score + ?", value)).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return &entry, nil
}

// UpdateScore adds delta to the team's score counter. The increment runs
// in the database so concurrent updates cannot lose each other.
func (l *Ledger) UpdateScore(teamID string, delta int) error {
	db, cancel := withTimeout(l.db)
	defer cancel()

	res := db.Model(&models.Team{}).Where("id = ?", teamID).
		Update("score", gorm.Expr("score + ?", delta))
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidLogin
	}
	return nil
}

// GrantHintCredit credits one team, or every team when teamID is empty,
// and records the grant attributed to staffID. Amounts below one default
// to one.
func (l *Ledger) GrantHintCredit(staffID, teamID string, amount int) error {
	if amount < 1 {
		amount = 1
	}

	db, cancel := withTimeout(l.db)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if teamID != "" {
			res := tx.Model(&models.Team{}).Where("id = ?", teamID).
				Update("hint_credit", gorm.Expr("hint_credit + ?", amount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}

			return tx.Create(&models.LogEntry{
				ID:     uuid.NewString(),
				Action: models.ActionAdmin,
				Value:  amount,
				TeamID: teamID,
				Detail: fmt.Sprintf("Granted %d hint credit by %s", amount, staffID),
			}).Error
		}

		// Session-level update without a WHERE clause needs the global
		// update guard disabled.
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(&models.Team{}).
			Update("hint_credit", gorm.Expr("hint_credit + ?", amount)).Error; err != nil {
			return err
		}

		return tx.Create(&models.LogEntry{
			ID:     uuid.NewString(),
			Action: models.ActionAdmin,
			Value:  amount,
			TeamID: staffID,
			Detail: fmt.Sprintf("Granted %d hint credit to all teams", amount),
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidLogin
		}
		return storeErr(err)
	}
	return nil
}

// GetHintCredit returns the team's current hint credit.
func (l *Ledger) GetHintCredit(teamID string) (int, error) {
	db, cancel := withTimeout(l.db)
	defer cancel()

	var team models.Team
	err := db.Select("hint_credit").First(&team, "id = ?", teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidLogin
		}
		return 0, storeErr(err)
	}
	return team.HintCredit, nil
}

// RequestHint pays for a hint: one transaction decrements the team's
// hint credit and logs the hint content with the advertised deduction as
// a negative value. The decrement only applies while credit is positive,
// so two concurrent requests against one remaining credit cannot both
// pass; the loser sees ErrInsufficientCredit and nothing is written.
//
// The stored credit always drops by a flat 1 even when the logged
// deduction differs, matching the historical ledger semantics.
func (l *Ledger) RequestHint(teamID, puzzle, hint string, deduction int) error {
	db, cancel := withTimeout(l.db)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Team{}).
			Where("id = ? AND hint_credit > 0", teamID).
			Update("hint_credit", gorm.Expr("hint_credit - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientCredit
		}

		return tx.Create(&models.LogEntry{
			ID:     uuid.NewString(),
			Action: models.ActionHint,
			Value:  -deduction,
			TeamID: teamID,
			Puzzle: puzzle,
			Detail: hint,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientCredit) {
			return ErrInsufficientCredit
		}
		return storeErr(err)
	}
	return nil
}
