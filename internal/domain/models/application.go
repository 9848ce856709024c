package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAccepted    ApplicationStatus = "accepted"
)

func ToApplicationStatus(s string) (ApplicationStatus, error) {
	switch s {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusShortlisted):
		return StatusShortlisted, nil
	case string(StatusRejected):
		return StatusRejected, nil
	case string(StatusAccepted):
		return StatusAccepted, nil
	default:
		return "", errors.New("invalid application status")
	}
}

type Application struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	JobID     string            `gorm:"index;not null" json:"jobId"`
	StudentID string            `gorm:"index;not null" json:"studentId"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now()
	}
	return nil
}

type ApplicationWithJob struct {
	Application
	Job *Job `json:"job"`
}
