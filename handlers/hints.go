// handlers/hints.go - Hint credit and hint unlocking
package handlers

import (
	"ctfboard/middleware"

	"github.com/gofiber/fiber/v2"
)

type HintRequest struct {
	Puzzle    string `json:"puzzle"`
	Hint      string `json:"hint"`
	Deduction int    `json:"deduction"`
}

// RequestHint pays one hint credit for a hint. The deduction shown in
// the log can differ from the flat one-credit charge.
func RequestHint(c *fiber.Ctx) error {
	var req HintRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Puzzle == "" {
		return fail(c, fiber.StatusBadRequest, "Puzzle is required")
	}

	teamID := middleware.TeamID(c)
	if err := ledger.RequestHint(teamID, req.Puzzle, req.Hint, req.Deduction); err != nil {
		return serviceError(c, err)
	}

	credit, err := ledger.GetHintCredit(teamID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"hint":        req.Hint,
		"hint_credit": credit,
	})
}

// GetUnlockedHints lists the hints the team has already unlocked for a
// puzzle.
func GetUnlockedHints(c *fiber.Ctx) error {
	puzzle := c.Params("puzzle")
	if puzzle == "" {
		return fail(c, fiber.StatusBadRequest, "Puzzle is required")
	}

	hints, err := activityLog.UnlockedHints(middleware.TeamID(c), puzzle)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"puzzle":  puzzle,
		"hints":   hints,
	})
}

// GetHintCredit returns the team's remaining hint credit.
func GetHintCredit(c *fiber.Ctx) error {
	credit, err := ledger.GetHintCredit(middleware.TeamID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"hint_credit": credit,
	})
}
