package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RolePR      Role = "pr"
)

func ToRole(s string) (Role, error) {
	switch s {
	case string(RoleStudent):
		return RoleStudent, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RolePR):
		return RolePR, nil
	default:
		return "", errors.New("invalid role")
	}
}

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type Profile struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"uniqueIndex;not null" json:"userId"`
	Role           Role      `gorm:"index" json:"role"`
	Name           string    `json:"name"`
	Department     string    `json:"department"`
	GraduationYear int       `json:"graduationYear"`
	Skills         []string  `gorm:"serializer:json" json:"skills"`
	ResumeKey      string    `json:"resumeKey,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return nil
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
