package services

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/events"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type jobRepository interface {
	Add(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByMailID(ctx context.Context, mailID string) (*models.Job, error)
	FindActiveByCompany(ctx context.Context, company string) (*models.Job, error)
	List(ctx context.Context, onlyActive bool) ([]models.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type mailRepository interface {
	Add(ctx context.Context, mail *models.Mail) error
	GetByID(ctx context.Context, id string) (*models.Mail, error)
	AppendAttachmentLinks(ctx context.Context, id string, links []string) (*models.Mail, error)
	ApprovalByIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

type appliedJobsReader interface {
	AppliedJobIDs(ctx context.Context, studentID string) ([]string, error)
}

type companiesReader interface {
	ActiveCompanies(ctx context.Context) ([]string, error)
}

type JobInput struct {
	Title           string             `json:"title" validate:"max=300"`
	Company         string             `json:"company" validate:"max=200"`
	Description     string             `json:"description"`
	Location        string             `json:"location"`
	Type            string             `json:"type" validate:"omitempty,oneof=full-time internship part-time trainee"`
	Skills          []string           `json:"skills"`
	Salary          models.Salary      `json:"salary"`
	Deadline        string             `json:"deadline"`
	ApplicationLink []string           `json:"applicationLink"`
	MoreDetails     models.MoreDetails `json:"moreDetails"`
	IsActive        *bool              `json:"isActive"`
	MailID          string             `json:"mailId"`
}

// requiredJobFields are mandatory for jobs posted by admins. Webhook jobs may come without them.
type requiredJobFields struct {
	Title   string `json:"title" validate:"required"`
	Company string `json:"company" validate:"required"`
}

// JobPatch holds the fields of an admin update. Nil fields are left untouched.
type JobPatch struct {
	Title           *string             `json:"title" validate:"omitempty,min=1,max=300"`
	Company         *string             `json:"company" validate:"omitempty,min=1,max=200"`
	Description     *string             `json:"description"`
	Location        *string             `json:"location"`
	Type            *string             `json:"type" validate:"omitempty,oneof=full-time internship part-time trainee"`
	Skills          *[]string           `json:"skills"`
	Salary          *models.Salary      `json:"salary"`
	Deadline        *string             `json:"deadline"`
	ApplicationLink *[]string           `json:"applicationLink"`
	MoreDetails     *models.MoreDetails `json:"moreDetails"`
	IsActive        *bool               `json:"isActive"`
}

type JobsService struct {
	accessControl
	bus          EventBus.Bus
	jobs         jobRepository
	mails        mailRepository
	applications appliedJobsReader
	companies    companiesReader
}

func NewJobsService(bus EventBus.Bus, jobs jobRepository, mails mailRepository, applications appliedJobsReader,
	companies companiesReader, profiles profileReader) *JobsService {
	return &JobsService{
		accessControl: accessControl{profiles: profiles},
		bus:           bus,
		jobs:          jobs,
		mails:         mails,
		applications:  applications,
		companies:     companies,
	}
}

func (s *JobsService) Create(ctx context.Context, userID string, input JobInput) (*models.Job, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := validateInput(requiredJobFields{Title: input.Title, Company: input.Company}); err != nil {
		return nil, err
	}

	if input.MailID == "" {
		mail := &models.Mail{
			Subject:        input.Title + " at " + input.Company,
			MailContent:    input.Description,
			PlainText:      input.Description,
			Classification: models.ManualClassification,
			Reason:         "posted by admin",
			IsApproved:     true,
		}
		if err := s.mails.Add(ctx, mail); err != nil {
			return nil, err
		}
		input.MailID = mail.ID
	} else if err := s.ensureMailExists(ctx, input.MailID); err != nil {
		return nil, err
	}

	job := newJob(input)
	if err := s.jobs.Add(ctx, job); err != nil {
		return nil, err
	}

	log.Infof("job %v posted by %v", job.ID, userID)
	s.bus.Publish(events.JobPostedTopic, events.JobPosted{Job: *job})
	return job, nil
}

// UpsertFromMail creates the job parsed from a mail, or updates the job already linked to that mail.
func (s *JobsService) UpsertFromMail(ctx context.Context, input JobInput) (*models.Job, bool, error) {
	if input.MailID == "" {
		return nil, false, apperr.Validation("mailId is required")
	}
	if err := validateInput(input); err != nil {
		return nil, false, err
	}
	if err := s.ensureMailExists(ctx, input.MailID); err != nil {
		return nil, false, err
	}

	existing, err := s.jobs.GetByMailID(ctx, input.MailID)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		job := newJob(input)
		if err = s.jobs.Add(ctx, job); err != nil {
			return nil, false, err
		}
		log.Infof("job %v created from mail %v", job.ID, input.MailID)
		s.bus.Publish(events.JobPostedTopic, events.JobPosted{Job: *job})
		return job, true, nil
	}

	mergeInput(existing, input)
	if err = s.jobs.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	log.Infof("job %v updated from mail %v", existing.ID, input.MailID)
	s.bus.Publish(events.JobUpdatedTopic, events.JobUpdated{Job: *existing})
	return existing, false, nil
}

func (s *JobsService) Update(ctx context.Context, userID, id string, patch JobPatch) (*models.Job, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(patch); err != nil {
		return nil, err
	}

	job, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(job, patch)
	if err = s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	s.bus.Publish(events.JobUpdatedTopic, events.JobUpdated{Job: *job})
	return job, nil
}

func (s *JobsService) List(ctx context.Context, userID string, onlyActive bool) ([]models.Job, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.jobs.List(ctx, onlyActive)
}

func (s *JobsService) GetByID(ctx context.Context, userID, id string) (*models.Job, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.getJob(ctx, id)
}

// GetByMailID returns nil when no job was created from the mail.
func (s *JobsService) GetByMailID(ctx context.Context, userID, mailID string) (*models.Job, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.jobs.GetByMailID(ctx, mailID)
}

func (s *JobsService) Delete(ctx context.Context, userID, id string) error {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return err
	}

	deleted, err := s.jobs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Job not found")
	}

	log.Infof("job %v deleted by %v", id, userID)
	s.bus.Publish(events.JobDeletedTopic, events.JobDeleted{JobID: id})
	return nil
}

// ListActiveJobs decorates active jobs with the approval of their mail and whether the caller applied.
func (s *JobsService) ListActiveJobs(ctx context.Context, userID string) ([]models.JobWithStatus, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.List(ctx, true)
	if err != nil {
		return nil, err
	}

	mailIDs := lo.Uniq(lo.Map(jobs, func(j models.Job, _ int) string { return j.MailID }))
	approvals, err := s.mails.ApprovalByIDs(ctx, mailIDs)
	if err != nil {
		return nil, err
	}

	applied, err := s.applications.AppliedJobIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	appliedSet := lo.SliceToMap(applied, func(id string) (string, struct{}) { return id, struct{}{} })

	return lo.Map(jobs, func(job models.Job, _ int) models.JobWithStatus {
		_, hasApplied := appliedSet[job.ID]
		return models.JobWithStatus{
			Job: job,
			Status: models.JobStatus{
				ApprovalStatus: approvals[job.MailID],
				HasApplied:     hasApplied,
			},
		}
	}), nil
}

func (s *JobsService) ListActiveCompanies(ctx context.Context, userID string) ([]string, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	return s.ActiveCompanies(ctx)
}

// ActiveCompanies is the unauthenticated variant used by the webhook surface.
func (s *JobsService) ActiveCompanies(ctx context.Context) ([]string, error) {
	companies, err := s.companies.ActiveCompanies(ctx)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []string{}
	}
	return companies, nil
}

func (s *JobsService) getJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.NotFound("Job not found")
	}
	return job, nil
}

func (s *JobsService) ensureMailExists(ctx context.Context, mailID string) error {
	mail, err := s.mails.GetByID(ctx, mailID)
	if err != nil {
		return err
	}
	if mail == nil {
		return apperr.NotFound("Mail not found")
	}
	return nil
}

func newJob(input JobInput) *models.Job {
	job := &models.Job{IsActive: true}
	applyInput(job, input)
	return job
}

func applyInput(job *models.Job, input JobInput) {
	job.Title = input.Title
	job.Company = input.Company
	job.Description = input.Description
	job.Location = input.Location
	job.Type = models.FullTime
	if input.Type != "" {
		job.Type = models.JobType(input.Type)
	}
	job.Skills = lo.Ternary(input.Skills == nil, []string{}, input.Skills)
	job.Salary = input.Salary
	job.Deadline = input.Deadline
	job.ApplicationLink = lo.Ternary(input.ApplicationLink == nil, []string{}, input.ApplicationLink)
	job.MoreDetails = input.MoreDetails
	job.MailID = input.MailID
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}
}

// mergeInput applies a follow-up parse of the same mail. Fields it left empty keep their stored value.
func mergeInput(job *models.Job, input JobInput) {
	assignNonZero(&job.Title, input.Title)
	assignNonZero(&job.Company, input.Company)
	assignNonZero(&job.Description, input.Description)
	assignNonZero(&job.Location, input.Location)
	assignNonZero(&job.Deadline, input.Deadline)
	assignNonZero(&job.Type, models.JobType(input.Type))
	assignNonZero(&job.Salary.Stipend, input.Salary.Stipend)
	assignNonZero(&job.Salary.CTC, input.Salary.CTC)
	assignNonZero(&job.MoreDetails.Eligibility, input.MoreDetails.Eligibility)
	assignNonZero(&job.MoreDetails.Process, input.MoreDetails.Process)
	assignNonZero(&job.MoreDetails.Benefits, input.MoreDetails.Benefits)
	assignNonZero(&job.MoreDetails.Bond, input.MoreDetails.Bond)
	assignNonZero(&job.MoreDetails.Other, input.MoreDetails.Other)
	if len(input.Skills) > 0 {
		job.Skills = input.Skills
	}
	if len(input.ApplicationLink) > 0 {
		job.ApplicationLink = input.ApplicationLink
	}
	assign(&job.IsActive, input.IsActive)
}

func applyPatch(job *models.Job, patch JobPatch) {
	assign(&job.Title, patch.Title)
	assign(&job.Company, patch.Company)
	assign(&job.Description, patch.Description)
	assign(&job.Location, patch.Location)
	assign(&job.Deadline, patch.Deadline)
	assign(&job.Skills, patch.Skills)
	assign(&job.ApplicationLink, patch.ApplicationLink)
	assign(&job.Salary, patch.Salary)
	assign(&job.MoreDetails, patch.MoreDetails)
	assign(&job.IsActive, patch.IsActive)
	if patch.Type != nil {
		job.Type = models.JobType(*patch.Type)
	}
}

func assign[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}

func assignNonZero[T comparable](dst *T, value T) {
	if !lo.IsEmpty(value) {
		*dst = value
	}
}
