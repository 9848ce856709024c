package repositories

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) Add(ctx context.Context, application *models.Application) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(application).Error, "failed to add application")
}

func (repo *Applications) GetByID(ctx context.Context, id string) (*models.Application, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *Applications) FindByStudentAndJob(ctx context.Context, studentID, jobID string) (*models.Application, error) {
	return repo.first(ctx, "student_id = ? AND job_id = ?", studentID, jobID)
}

func (repo *Applications) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
	return errors.Wrap(err, "failed to update application status")
}

func (repo *Applications) ListByStudent(ctx context.Context, studentID string) ([]models.ApplicationWithJob, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	jobIDs := lo.Uniq(lo.Map(applications, func(a models.Application, _ int) string { return a.JobID }))
	var jobs []models.Job
	if len(jobIDs) > 0 {
		if err = repo.db.WithContext(ctx).Where("id IN ?", jobIDs).Find(&jobs).Error; err != nil {
			return nil, errors.Wrap(err, "failed to load application jobs")
		}
	}
	jobsByID := lo.KeyBy(jobs, func(j models.Job) string { return j.ID })

	return lo.Map(applications, func(a models.Application, _ int) models.ApplicationWithJob {
		result := models.ApplicationWithJob{Application: a}
		if job, ok := jobsByID[a.JobID]; ok {
			result.Job = &job
		}
		return result
	}), nil
}

func (repo *Applications) AppliedJobIDs(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("student_id = ?", studentID).
		Pluck("job_id", &ids).Error
	return ids, errors.Wrap(err, "failed to list applied jobs")
}

func (repo *Applications) ListStudentIDsByJob(ctx context.Context, jobID string) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ?", jobID).
		Distinct("student_id").
		Pluck("student_id", &ids).Error
	return ids, errors.Wrap(err, "failed to list applicants")
}

func (repo *Applications) first(ctx context.Context, query string, args ...any) (*models.Application, error) {
	var application models.Application
	err := repo.db.WithContext(ctx).Where(query, args...).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get application")
	}
	return &application, nil
}
