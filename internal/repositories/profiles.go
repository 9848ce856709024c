package repositories

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) Add(ctx context.Context, profile *models.Profile) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(profile).Error, "failed to add profile")
}

func (repo *Profiles) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := repo.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get profile")
	}
	return &profile, nil
}

func (repo *Profiles) Update(ctx context.Context, profile *models.Profile) error {
	return errors.Wrap(repo.db.WithContext(ctx).Save(profile).Error, "failed to update profile")
}

func (repo *Profiles) ListUserIDsByRole(ctx context.Context, role models.Role) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).Model(&models.Profile{}).
		Where("role = ?", role).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles by role")
	}
	return ids, nil
}
