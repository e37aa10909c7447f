// handlers/handlers.go - Service wiring and shared response mapping
package handlers

import (
	"errors"
	"log"

	"ctfboard/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	teamService   *services.TeamService
	activityLog   *services.ActivityLog
	ledger        *services.Ledger
	announcements *services.AnnouncementService
)

// Init wires the handler package to the storage client. Called once from
// main after the connection pool is up.
func Init(db *gorm.DB, defaultHintCredit int) {
	teamService = services.NewTeamService(db, defaultHintCredit)
	activityLog = services.NewActivityLog(db)
	ledger = services.NewLedger(db)
	announcements = services.NewAnnouncementService(db)
}

// User-facing message catalog. Internal error detail is never echoed
// verbatim; every failure falls into one of these categories.
const (
	msgInvalidLogin  = "Invalid Login"
	msgDuplicateTeam = "Duplicated team: a team with that name already exists. Try logging in?"
	msgBanned        = "Your team account has been disabled. Please contact the admins if you have questions."
	msgNotFound      = "The page you're looking for is either a cusp, a corner, an asymptote, or just does not exist. Try again?"
	msgServiceDown   = "A dependent service is currently unavailable. It's not on you, it's on us."
)

// NotFound is the fallback for unrouted paths.
func NotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, msgNotFound)
}

// serviceError maps a service-layer error onto the user-facing taxonomy.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTeamExists):
		return fail(c, fiber.StatusConflict, msgDuplicateTeam)
	case errors.Is(err, services.ErrInvalidLogin):
		return fail(c, fiber.StatusUnauthorized, msgInvalidLogin)
	case errors.Is(err, services.ErrInvalidField):
		return fail(c, fiber.StatusBadRequest, "That field cannot be updated")
	case errors.Is(err, services.ErrInsufficientCredit):
		return fail(c, fiber.StatusForbidden, "Insufficient hint credit")
	case errors.Is(err, services.ErrTimeout), errors.Is(err, services.ErrStoreUnavailable):
		log.Printf("storage error on %s %s: %v", c.Method(), c.Path(), err)
		return fail(c, fiber.StatusServiceUnavailable, msgServiceDown)
	default:
		log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return fail(c, fiber.StatusInternalServerError, msgServiceDown)
	}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
