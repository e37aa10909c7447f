// services/announcement_service.go - Broadcast message store
package services

import (
	"ctfboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// Create stores a new announcement and returns it. Fan-out to connected
// clients is the caller's job and must happen only after this commits.
func (s *AnnouncementService) Create(title, content, author string) (*models.Announcement, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	ann := models.Announcement{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Author:  author,
	}
	if err := db.Create(&ann).Error; err != nil {
		return nil, storeErr(err)
	}
	return &ann, nil
}

// ListAll returns every announcement, newest first.
func (s *AnnouncementService) ListAll() ([]models.Announcement, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var anns []models.Announcement
	if err := db.Order("timestamp DESC").Find(&anns).Error; err != nil {
		return nil, storeErr(err)
	}
	return anns, nil
}
