// handlers/admin/admin.go - Staff operations
package admin

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"ctfboard/middleware"
	"ctfboard/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	teamService *services.TeamService
	activityLog *services.ActivityLog
	ledger      *services.Ledger
)

// Init wires the admin handlers to the storage client.
func Init(db *gorm.DB, defaultHintCredit int) {
	teamService = services.NewTeamService(db, defaultHintCredit)
	activityLog = services.NewActivityLog(db)
	ledger = services.NewLedger(db)
}

// GetTeams lists every team for the staff dashboard, admins first.
func GetTeams(c *fiber.Ctx) error {
	teams, err := teamService.ListAll()
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
	})
}

type BanRequest struct {
	Banned bool `json:"banned"`
}

// BanTeam sets or clears a team's banned flag. The change and its audit
// entry commit together; the caller sees the result.
func BanTeam(c *fiber.Ctx) error {
	var req BanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := c.Params("id")
	if err := teamService.Ban(id, req.Banned, middleware.TeamID(c)); err != nil {
		return mapError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"banned":  req.Banned,
	})
}

type GrantCreditRequest struct {
	TeamID string `json:"team_id"` // empty grants to every team
	Amount int    `json:"amount"`
}

// GrantHintCredit credits one team, or all teams when no id is given.
func GrantHintCredit(c *fiber.Ctx) error {
	var req GrantCreditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ledger.GrantHintCredit(middleware.TeamID(c), req.TeamID, req.Amount); err != nil {
		return mapError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetLogs returns the full activity log, newest first.
func GetLogs(c *fiber.Ctx) error {
	entries, err := activityLog.ListAll()
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"logs":    entries,
	})
}

// ExportLogs streams the activity log as a CSV download.
func ExportLogs(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := activityLog.ExportCSV(&buf); err != nil {
		return mapError(c, err)
	}

	filename := fmt.Sprintf("infinity-log-%d-exported.csv", time.Now().UnixMilli())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidLogin):
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Team not found",
		})
	case errors.Is(err, services.ErrTimeout), errors.Is(err, services.ErrStoreUnavailable):
		log.Printf("storage error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(503).JSON(fiber.Map{
			"success": false,
			"error":   "Storage is currently unavailable",
		})
	default:
		log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal error",
		})
	}
}
