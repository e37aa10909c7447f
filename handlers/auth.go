// handlers/auth.go - Registration and login
package handlers

import (
	"os"
	"strings"
	"time"

	"ctfboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	Division    string `json:"division"`
	Affiliation string `json:"affiliation"`
	DisplayName string `json:"display_name"`
	Emails      string `json:"emails"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token,omitempty"`
	Team    models.TeamView `json:"team,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Register creates a new team account. Team names must start with
// "team_" and the password must not be empty.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !strings.HasPrefix(req.Name, "team_") || req.Password == "" {
		return fail(c, fiber.StatusBadRequest,
			`Invalid account details. Team ID must start with "team_", and password must not be empty.`)
	}

	id, err := teamService.Create(req.Name, req.Password, req.Division,
		req.Affiliation, req.DisplayName, req.Emails)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      id,
		"message": "Your account has been registered successfully. You may now proceed to log in.",
	})
}

// Login authenticates a team, records the sign-in with the client IP
// and issues a session token. Banned teams are refused.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	id, err := teamService.Authenticate(req.Name, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	team, err := teamService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	if team.IsBanned {
		return fail(c, fiber.StatusForbidden, msgBanned)
	}

	if err := activityLog.RecordLogin(id, c.IP()); err != nil {
		return serviceError(c, err)
	}

	token, err := generateToken(team)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, msgServiceDown)
	}

	return c.JSON(AuthResponse{
		Success: true,
		Token:   token,
		Team:    team,
	})
}

// generateToken issues an HS256 session token for the team.
func generateToken(team models.TeamView) (string, error) {
	claims := jwt.MapClaims{
		"team_id":  team.ID,
		"name":     team.Name,
		"is_admin": team.IsAdmin,
		"exp":      time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
