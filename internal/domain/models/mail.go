package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ManualClassification = "manual"

type Mail struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Subject         string    `json:"subject"`
	MailContent     string    `gorm:"type:text" json:"mailContent"`
	PlainText       string    `gorm:"type:text" json:"plainText"`
	Links           []string  `gorm:"serializer:json" json:"links"`
	AttachmentLinks []string  `gorm:"serializer:json" json:"attachmentLinks"`
	Classification  string    `json:"classification"`
	Reason          string    `gorm:"type:text" json:"reason"`
	IsApproved      bool      `json:"isApproved"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (m *Mail) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.AttachmentLinks == nil {
		m.AttachmentLinks = []string{}
	}
	if m.Links == nil {
		m.Links = []string{}
	}
	return nil
}

type JobUpdate struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	JobID     string    `gorm:"index;not null" json:"jobId"`
	MailID    string    `gorm:"index" json:"mailId"`
	Summary   string    `gorm:"type:text" json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *JobUpdate) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
