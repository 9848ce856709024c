package repositories

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type JobUpdates struct {
	db *gorm.DB
}

func NewJobUpdatesRepository(db *gorm.DB) *JobUpdates {
	return &JobUpdates{db: db}
}

func (repo *JobUpdates) Add(ctx context.Context, update *models.JobUpdate) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(update).Error, "failed to add job update")
}

func (repo *JobUpdates) ListByJob(ctx context.Context, jobID string) ([]models.JobUpdate, error) {
	var updates []models.JobUpdate
	err := repo.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&updates).Error
	return updates, errors.Wrap(err, "failed to list job updates")
}
