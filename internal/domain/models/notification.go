package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationJobPosted                NotificationType = "job_posted"
	NotificationJobUpdated               NotificationType = "job_updated"
	NotificationJobAnnouncement          NotificationType = "job_announcement"
	NotificationApplicationSubmitted     NotificationType = "application_submitted"
	NotificationApplicationReceived      NotificationType = "application_received"
	NotificationApplicationStatusChanged NotificationType = "application_status_changed"
	NotificationGeneral                  NotificationType = "general"
)

var notificationTypes = []NotificationType{
	NotificationJobPosted, NotificationJobUpdated, NotificationJobAnnouncement,
	NotificationApplicationSubmitted, NotificationApplicationReceived,
	NotificationApplicationStatusChanged, NotificationGeneral,
}

func IsNotificationType(s string) bool {
	for _, t := range notificationTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

type Notification struct {
	ID        string           `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"index;not null" json:"userId"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `gorm:"index" json:"read"`
	CreatedAt time.Time        `gorm:"index" json:"createdAt"`
	RelatedID string           `json:"relatedId,omitempty"`
	ActionURL string           `json:"actionUrl,omitempty"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
