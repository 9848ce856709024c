package events

import (
	"github.com/maxaizer/placement-portal/internal/domain/models"
)

var (
	JobPostedTopic                = "JobPostedEvent"
	JobUpdatedTopic               = "JobUpdatedEvent"
	JobDeletedTopic               = "JobDeletedEvent"
	JobAnnouncedTopic             = "JobAnnouncedEvent"
	ApplicationSubmittedTopic     = "ApplicationSubmittedEvent"
	ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"
)

type JobPosted struct {
	Job models.Job
}

type JobUpdated struct {
	Job models.Job
}

type JobDeleted struct {
	JobID string
}

type JobAnnounced struct {
	Job    models.Job
	Update models.JobUpdate
}

type ApplicationSubmitted struct {
	Application models.Application
	Job         models.Job
}

type ApplicationStatusChanged struct {
	Application models.Application
	Job         models.Job
	Previous    models.ApplicationStatus
}
