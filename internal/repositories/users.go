package repositories

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Ensure records the user if it was not seen before.
func (repo *Users) Ensure(ctx context.Context, userID string) error {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.User{ID: userID}).Error
	return errors.Wrap(err, "failed to ensure user")
}

func (repo *Users) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := repo.db.WithContext(ctx).Model(&models.User{}).Order("created_at").Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return ids, nil
}
