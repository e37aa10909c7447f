// handlers/submissions.go - Puzzle answer submissions
package handlers

import (
	"ctfboard/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubmissionRequest struct {
	Puzzle  string `json:"puzzle"`
	Answer  string `json:"answer"`
	Value   int    `json:"value"`
	Success bool   `json:"success"`
}

// SubmitAnswer records a graded submission. The puzzle catalog grades
// answers upstream; this endpoint persists the attempt or solve and, on
// a solve, the score in one shot.
func SubmitAnswer(c *fiber.Ctx) error {
	var req SubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Puzzle == "" {
		return fail(c, fiber.StatusBadRequest, "Puzzle is required")
	}

	entry, err := ledger.RecordAttempt(middleware.TeamID(c), req.Puzzle,
		req.Answer, req.Value, req.Success)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"entry":   entry,
	})
}

// GetSolvedPuzzles returns the set of puzzles the team has solved.
func GetSolvedPuzzles(c *fiber.Ctx) error {
	puzzles, err := activityLog.SolvedPuzzles(middleware.TeamID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"solved":  puzzles,
	})
}
