// services/team_service.go - Team account repository
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ctfboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// updatableFields is the closed set of team columns that self-service
// updates may touch. Anything else is rejected with ErrInvalidField.
var updatableFields = map[string]string{
	"display_name": "display_name",
	"affiliation":  "affiliation",
}

type TeamService struct {
	db *gorm.DB

	// defaultHintCredit is the hint allotment every new team starts with.
	defaultHintCredit int
}

func NewTeamService(db *gorm.DB, defaultHintCredit int) *TeamService {
	return &TeamService{db: db, defaultHintCredit: defaultHintCredit}
}

// Create registers a new team and returns its id. The name pre-check
// gives a friendly error on the common path; the unique index on name is
// the authoritative guard against two concurrent registrations.
func (s *TeamService) Create(name, password, division, affiliation, displayName, emails string) (string, error) {
	passHash, err := HashPassword(password)
	if err != nil {
		return "", storeErr(err)
	}

	db, cancel := withTimeout(s.db)
	defer cancel()

	var existing models.Team
	err = db.Select("id").Where("name = ?", name).First(&existing).Error
	if err == nil {
		return "", ErrTeamExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storeErr(err)
	}

	team := models.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Password:    passHash,
		Division:    division,
		Affiliation: affiliation,
		DisplayName: displayName,
		Emails:      emails,
		HintCredit:  s.defaultHintCredit,
	}

	if err := db.Create(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrTeamExists
		}
		return "", storeErr(err)
	}
	return team.ID, nil
}

// Authenticate checks a name/password pair and returns the team id.
// Unknown names and wrong passwords produce the same error.
func (s *TeamService) Authenticate(name, password string) (string, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var team models.Team
	err := db.Select("id", "password").
		Where("TRIM(name) = ?", strings.TrimSpace(name)).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidLogin
		}
		return "", storeErr(err)
	}

	if !VerifyPassword(password, team.Password) {
		return "", ErrInvalidLogin
	}
	return team.ID, nil
}

// Get returns the sanitized projection of a team.
func (s *TeamService) Get(id string) (models.TeamView, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var team models.Team
	if err := db.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TeamView{}, ErrInvalidLogin
		}
		return models.TeamView{}, storeErr(err)
	}
	return team.View(), nil
}

// UpdateField updates one allow-listed team field. The value is trimmed
// before storage.
func (s *TeamService) UpdateField(id, key, value string) error {
	column, ok := updatableFields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidField, key)
	}

	db, cancel := withTimeout(s.db)
	defer cancel()

	res := db.Model(&models.Team{}).Where("id = ?", id).
		Update(column, strings.TrimSpace(value))
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidLogin
	}
	return nil
}

// ListAll returns every team, admins first then by name. Admin
// dashboard use.
func (s *TeamService) ListAll() ([]models.TeamSummary, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var teams []models.Team
	if err := db.Order("admin DESC, name ASC").Find(&teams).Error; err != nil {
		return nil, storeErr(err)
	}

	summaries := make([]models.TeamSummary, 0, len(teams))
	for i := range teams {
		summaries = append(summaries, teams[i].Summary())
	}
	return summaries, nil
}

// ListByDivision returns the division ranking: banned teams excluded,
// finished teams first by finish time, unfinished teams after them by
// score. The "IS NULL" term keeps unfinished teams last on every
// backend regardless of its NULL ordering default.
func (s *TeamService) ListByDivision(division string) ([]models.TeamSummary, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var teams []models.Team
	err := db.Where("division = ? AND banned = ?", division, false).
		Order("finish_time IS NULL, finish_time ASC, score DESC").
		Find(&teams).Error
	if err != nil {
		return nil, storeErr(err)
	}

	summaries := make([]models.TeamSummary, 0, len(teams))
	for i := range teams {
		sum := teams[i].Summary()
		sum.Name = ""
		sum.IsAdmin = false
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// ListIDNameMap maps every team id to its account name, for display
// resolution elsewhere.
func (s *TeamService) ListIDNameMap() (map[string]string, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var teams []models.Team
	if err := db.Select("id", "name").Find(&teams).Error; err != nil {
		return nil, storeErr(err)
	}

	names := make(map[string]string, len(teams))
	for i := range teams {
		names[teams[i].ID] = teams[i].Name
	}
	return names, nil
}

// Ban sets or clears the banned flag and records the action in the
// activity log, attributed to staffID. Both writes commit together and
// the result is reported to the caller.
func (s *TeamService) Ban(id string, banned bool, staffID string) error {
	db, cancel := withTimeout(s.db)
	defer cancel()

	action := models.ActionBan
	detail := fmt.Sprintf("Banned by %s", staffID)
	if !banned {
		action = models.ActionUnban
		detail = fmt.Sprintf("Unbanned by %s", staffID)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Team{}).Where("id = ?", id).Update("banned", banned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(&models.LogEntry{
			ID:     uuid.NewString(),
			Action: action,
			TeamID: id,
			Detail: detail,
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

// Finish records a team's completion. The finalized flag is sticky: one
// atomic update ORs the requested flag into the stored one, so a later
// call can never clear it and concurrent calls cannot lose each other's
// writes.
func (s *TeamService) Finish(id string, finishing, finalize bool) error {
	db, cancel := withTimeout(s.db)
	defer cancel()

	updates := map[string]interface{}{
		"finalized": gorm.Expr("finalized OR ?", finalize),
	}
	if finishing {
		updates["finish_time"] = time.Now().UTC()
	}

	res := db.Model(&models.Team{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidLogin
	}
	return nil
}
