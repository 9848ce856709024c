package repositories

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *models.Job) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(job).Error, "failed to add job")
}

func (repo *Jobs) Update(ctx context.Context, job *models.Job) error {
	return errors.Wrap(repo.db.WithContext(ctx).Save(job).Error, "failed to update job")
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *Jobs) GetByMailID(ctx context.Context, mailID string) (*models.Job, error) {
	return repo.first(ctx, "mail_id = ?", mailID)
}

// FindActiveByCompany returns the most recent active job of the company, ignoring case.
func (repo *Jobs) FindActiveByCompany(ctx context.Context, company string) (*models.Job, error) {
	var job models.Job
	err := repo.db.WithContext(ctx).
		Where("is_active = ? AND LOWER(company) = LOWER(?)", true, company).
		Order("created_at DESC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find job by company")
	}
	return &job, nil
}

func (repo *Jobs) List(ctx context.Context, onlyActive bool) ([]models.Job, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	return jobs, nil
}

func (repo *Jobs) ActiveCompanies(ctx context.Context) ([]string, error) {
	var companies []string
	err := repo.db.WithContext(ctx).Model(&models.Job{}).
		Where("is_active = ?", true).
		Distinct("company").
		Order("company").
		Pluck("company", &companies).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active companies")
	}
	return companies, nil
}

func (repo *Jobs) Deactivate(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := repo.db.WithContext(ctx).Model(&models.Job{}).
		Where("id IN ?", ids).
		Update("is_active", false)
	return res.RowsAffected, errors.Wrap(res.Error, "failed to deactivate jobs")
}

// Delete removes the job with its applications and updates.
func (repo *Jobs) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Application{}, "job_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.JobUpdate{}, "job_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Job{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, errors.Wrap(err, "failed to delete job")
}

func (repo *Jobs) first(ctx context.Context, query string, args ...any) (*models.Job, error) {
	var job models.Job
	err := repo.db.WithContext(ctx).Where(query, args...).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get job")
	}
	return &job, nil
}
