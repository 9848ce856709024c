package services

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/events"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

type jobUpdateRepository interface {
	Add(ctx context.Context, update *models.JobUpdate) error
	ListByJob(ctx context.Context, jobID string) ([]models.JobUpdate, error)
}

type companyJobFinder interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	FindActiveByCompany(ctx context.Context, company string) (*models.Job, error)
}

type JobUpdateInput struct {
	JobID   string `json:"jobId" validate:"required"`
	MailID  string `json:"mailId"`
	Summary string `json:"summary" validate:"required"`
}

type MailJobUpdateInput struct {
	Summary     string `json:"summary" validate:"required"`
	MailID      string `json:"mailId" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
}

type JobUpdatesService struct {
	accessControl
	bus     EventBus.Bus
	updates jobUpdateRepository
	jobs    companyJobFinder
}

func NewJobUpdatesService(bus EventBus.Bus, updates jobUpdateRepository, jobs companyJobFinder,
	profiles profileReader) *JobUpdatesService {
	return &JobUpdatesService{
		accessControl: accessControl{profiles: profiles},
		bus:           bus,
		updates:       updates,
		jobs:          jobs,
	}
}

func (s *JobUpdatesService) Create(ctx context.Context, userID string, input JobUpdateInput) (*models.JobUpdate, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.NotFound("Job not found")
	}

	return s.append(ctx, job, input.MailID, input.Summary)
}

// CreateFromMail appends the update to the latest active job of the named company.
func (s *JobUpdatesService) CreateFromMail(ctx context.Context, input MailJobUpdateInput) (*models.JobUpdate, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindActiveByCompany(ctx, input.CompanyName)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.NotFound("No active job found for company %s", input.CompanyName)
	}

	return s.append(ctx, job, input.MailID, input.Summary)
}

func (s *JobUpdatesService) ListByJob(ctx context.Context, userID, jobID string) ([]models.JobUpdate, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.updates.ListByJob(ctx, jobID)
}

func (s *JobUpdatesService) append(ctx context.Context, job *models.Job, mailID, summary string) (*models.JobUpdate, error) {
	update := &models.JobUpdate{JobID: job.ID, MailID: mailID, Summary: summary}
	if err := s.updates.Add(ctx, update); err != nil {
		return nil, err
	}

	log.Infof("update %v appended to job %v", update.ID, job.ID)
	s.bus.Publish(events.JobAnnouncedTopic, events.JobAnnounced{Job: *job, Update: *update})
	return update, nil
}
