package services

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type userRepository interface {
	Ensure(ctx context.Context, userID string) error
}

type profileRepository interface {
	profileReader
	Add(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
}

type ProfileInput struct {
	Role           string   `json:"role" validate:"omitempty,oneof=student admin pr"`
	Name           string   `json:"name" validate:"required,max=200"`
	Department     string   `json:"department" validate:"max=200"`
	GraduationYear int      `json:"graduationYear" validate:"omitempty,gte=1950,lte=2100"`
	Skills         []string `json:"skills"`
}

type ProfilePatch struct {
	Name           *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Department     *string   `json:"department" validate:"omitempty,max=200"`
	GraduationYear *int      `json:"graduationYear" validate:"omitempty,gte=1950,lte=2100"`
	Skills         *[]string `json:"skills"`
}

type UsersService struct {
	accessControl
	users           userRepository
	profiles        profileRepository
	bootstrapAdmins map[string]struct{}
}

func NewUsersService(users userRepository, profiles profileRepository, bootstrapAdmins []string) *UsersService {
	return &UsersService{
		accessControl:   accessControl{profiles: profiles},
		users:           users,
		profiles:        profiles,
		bootstrapAdmins: lo.SliceToMap(bootstrapAdmins, func(id string) (string, struct{}) { return id, struct{}{} }),
	}
}

// Provision records a caller seen for the first time so that it receives broadcast notifications.
func (s *UsersService) Provision(ctx context.Context, userID string) error {
	if err := s.authenticate(userID); err != nil {
		return err
	}
	return s.users.Ensure(ctx, userID)
}

// CreateProfile onboards the caller. The admin role is only granted to bootstrap admins.
func (s *UsersService) CreateProfile(ctx context.Context, userID string, input ProfileInput) (*models.Profile, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Profile already exists")
	}

	role := models.RoleStudent
	if input.Role != "" {
		role = models.Role(input.Role)
	}
	_, bootstrap := s.bootstrapAdmins[userID]
	if bootstrap {
		role = models.RoleAdmin
	} else if role == models.RoleAdmin {
		return nil, apperr.ErrNotAuthorized
	}

	profile := &models.Profile{
		UserID:         userID,
		Role:           role,
		Name:           input.Name,
		Department:     input.Department,
		GraduationYear: input.GraduationYear,
		Skills:         lo.Ternary(input.Skills == nil, []string{}, input.Skills),
	}
	if err = s.users.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	if err = s.profiles.Add(ctx, profile); err != nil {
		return nil, err
	}

	log.Infof("profile created for user %v with role %v", userID, role)
	return profile, nil
}

// GetProfile returns the caller's profile, nil before onboarding.
func (s *UsersService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *UsersService) EditProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.Profile, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	if err := validateInput(patch); err != nil {
		return nil, err
	}

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	assign(&profile.Name, patch.Name)
	assign(&profile.Department, patch.Department)
	assign(&profile.GraduationYear, patch.GraduationYear)
	assign(&profile.Skills, patch.Skills)

	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// IsAdmin is false for anonymous callers rather than an error.
func (s *UsersService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.isAdmin(ctx, userID)
}

func (s *UsersService) GetByID(ctx context.Context, userID, targetUserID string) (*models.Profile, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.getProfile(ctx, targetUserID)
}

func (s *UsersService) SetResume(ctx context.Context, userID, resumeKey string) (*models.Profile, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.ResumeKey = resumeKey
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UsersService) getProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.NotFound("Profile not found")
	}
	return profile, nil
}
