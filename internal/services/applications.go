package services

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/events"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

type applicationRepository interface {
	Add(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	FindByStudentAndJob(ctx context.Context, studentID, jobID string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	ListByStudent(ctx context.Context, studentID string) ([]models.ApplicationWithJob, error)
}

type jobReader interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

type ApplicationsService struct {
	accessControl
	bus          EventBus.Bus
	applications applicationRepository
	jobs         jobReader
}

func NewApplicationsService(bus EventBus.Bus, applications applicationRepository, jobs jobReader,
	profiles profileReader) *ApplicationsService {
	return &ApplicationsService{
		accessControl: accessControl{profiles: profiles},
		bus:           bus,
		applications:  applications,
		jobs:          jobs,
	}
}

// Apply records the caller's application. A student applies to a job at most once.
func (s *ApplicationsService) Apply(ctx context.Context, userID, jobID string) (*models.Application, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.NotFound("Job not found")
	}
	if !job.IsActive {
		return nil, apperr.Validation("Job is no longer accepting applications")
	}

	existing, err := s.applications.FindByStudentAndJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Already applied")
	}

	application := &models.Application{JobID: jobID, StudentID: userID, Status: models.StatusPending}
	if err = s.applications.Add(ctx, application); err != nil {
		return nil, err
	}

	log.Infof("student %v applied to job %v", userID, jobID)
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{Application: *application, Job: *job})
	return application, nil
}

func (s *ApplicationsService) UpdateStatus(ctx context.Context, userID, applicationID, status string) (*models.Application, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}

	newStatus, err := models.ToApplicationStatus(status)
	if err != nil {
		return nil, apperr.Validation("invalid status %q", status)
	}

	application, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	previous := application.Status
	if previous == newStatus {
		return application, nil
	}

	if err = s.applications.UpdateStatus(ctx, application.ID, newStatus); err != nil {
		return nil, err
	}
	application.Status = newStatus

	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if job != nil {
		s.bus.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
			Application: *application,
			Job:         *job,
			Previous:    previous,
		})
	}
	return application, nil
}

// ListByStudent lists the applications of studentID, or of the caller when studentID is empty.
func (s *ApplicationsService) ListByStudent(ctx context.Context, userID, studentID string) ([]models.ApplicationWithJob, error) {
	if studentID == "" {
		studentID = userID
	}
	if err := s.requireSelfOrAdmin(ctx, userID, studentID); err != nil {
		return nil, err
	}
	return s.applications.ListByStudent(ctx, studentID)
}

func (s *ApplicationsService) GetByID(ctx context.Context, userID, id string) (*models.Application, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}

	application, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.requireSelfOrAdmin(ctx, userID, application.StudentID); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *ApplicationsService) getApplication(ctx context.Context, id string) (*models.Application, error) {
	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, apperr.NotFound("Application not found")
	}
	return application, nil
}
