package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobType string

const (
	FullTime   JobType = "full-time"
	Internship JobType = "internship"
	PartTime   JobType = "part-time"
	Trainee    JobType = "trainee"
)

func ToJobType(s string) (JobType, error) {
	switch s {
	case string(FullTime):
		return FullTime, nil
	case string(Internship):
		return Internship, nil
	case string(PartTime):
		return PartTime, nil
	case string(Trainee):
		return Trainee, nil
	default:
		return "", errors.New("invalid job type")
	}
}

type Salary struct {
	Stipend string `json:"stipend,omitempty"`
	CTC     string `json:"ctc,omitempty"`
}

type MoreDetails struct {
	Eligibility string `json:"eligibility,omitempty"`
	Process     string `json:"process,omitempty"`
	Benefits    string `json:"benefits,omitempty"`
	Bond        string `json:"bond,omitempty"`
	Other       string `json:"other,omitempty"`
}

type Job struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	Title           string      `json:"title"`
	Company         string      `gorm:"index" json:"company"`
	Description     string      `gorm:"type:text" json:"description"`
	Location        string      `json:"location"`
	Type            JobType     `json:"type"`
	Skills          []string    `gorm:"serializer:json" json:"skills"`
	Salary          Salary      `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Deadline        string      `json:"deadline"`
	ApplicationLink []string    `gorm:"serializer:json" json:"applicationLink"`
	MoreDetails     MoreDetails `gorm:"embedded;embeddedPrefix:more_" json:"moreDetails"`
	IsActive        bool        `gorm:"index" json:"isActive"`
	MailID          string      `gorm:"index;not null" json:"mailId"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	if j.ApplicationLink == nil {
		j.ApplicationLink = []string{}
	}
	return nil
}

// JobStatus describes an active job from the point of view of one caller.
type JobStatus struct {
	ApprovalStatus bool `json:"approvalStatus"`
	HasApplied     bool `json:"hasApplied"`
}

type JobWithStatus struct {
	Job
	Status JobStatus `json:"status"`
}
