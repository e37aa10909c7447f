// models/announcement.go
package models

import "time"

// Announcement is a broadcast message from staff. Append-only, listed
// newest first.
type Announcement struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	Author    string    `json:"author" gorm:"size:36"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

func (Announcement) TableName() string {
	return "announcements"
}
