// handlers/scoreboard.go - Division rankings and team directory
package handlers

import "github.com/gofiber/fiber/v2"

// GetScoreboard returns the ranking for one division. Banned teams
// never appear; finished teams rank above unfinished ones.
func GetScoreboard(c *fiber.Ctx) error {
	division := c.Params("division")
	if division == "" {
		return fail(c, fiber.StatusBadRequest, "Division is required")
	}

	teams, err := teamService.ListByDivision(division)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"division": division,
		"teams":    teams,
	})
}

// GetTeamDirectory maps team ids to account names for display
// resolution.
func GetTeamDirectory(c *fiber.Ctx) error {
	names, err := teamService.ListIDNameMap()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   names,
	})
}
