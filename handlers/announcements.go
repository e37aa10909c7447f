// handlers/announcements.go - Broadcast messages
package handlers

import (
	"ctfboard/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetAnnouncements lists announcements, newest first.
func GetAnnouncements(c *fiber.Ctx) error {
	anns, err := announcements.ListAll()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"announcements": anns,
	})
}

type AnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateAnnouncement stores a new announcement and fans it out to
// connected listeners. The broadcast happens strictly after the durable
// commit. Admin only.
func CreateAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Title == "" || req.Content == "" {
		return fail(c, fiber.StatusBadRequest, "Title and content are required")
	}

	ann, err := announcements.Create(req.Title, req.Content, middleware.TeamID(c))
	if err != nil {
		return serviceError(c, err)
	}

	announcementHub.broadcast(ann)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"announcement": ann,
	})
}
