// handlers/teams.go - Team self-service
package handlers

import (
	"ctfboard/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentTeam returns the authenticated team's sanitized record.
func GetCurrentTeam(c *fiber.Ctx) error {
	team, err := teamService.Get(middleware.TeamID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

type UpdateTeamRequest struct {
	DisplayName *string `json:"display_name"`
	Affiliation *string `json:"affiliation"`
}

// UpdateCurrentTeam updates the allow-listed self-service fields. Only
// fields present in the body are touched.
func UpdateCurrentTeam(c *fiber.Ctx) error {
	var req UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	id := middleware.TeamID(c)

	if req.DisplayName != nil {
		if err := teamService.UpdateField(id, "display_name", *req.DisplayName); err != nil {
			return serviceError(c, err)
		}
	}
	if req.Affiliation != nil {
		if err := teamService.UpdateField(id, "affiliation", *req.Affiliation); err != nil {
			return serviceError(c, err)
		}
	}

	team, err := teamService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

type FinishRequest struct {
	Finished bool `json:"finished"`
	Finalize bool `json:"finalize"`
}

// FinishRun stamps the team's finish time and optionally finalizes its
// standing. Finalization never reverts.
func FinishRun(c *fiber.Ctx) error {
	var req FinishRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := teamService.Finish(middleware.TeamID(c), req.Finished, req.Finalize); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
