package services

import (
	"context"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/placement-portal/internal/domain/events"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/maxaizer/placement-portal/internal/logger"
	"github.com/maxaizer/placement-portal/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type notificationBatchWriter interface {
	AddBatch(ctx context.Context, notifications []models.Notification) error
}

type userLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type roleLister interface {
	ListUserIDsByRole(ctx context.Context, role models.Role) ([]string, error)
}

type applicantLister interface {
	ListStudentIDsByJob(ctx context.Context, jobID string) ([]string, error)
}

// NotificationFanout turns domain events into notification records. It runs synchronously
// inside the publishing request and notifies every user on job events.
type NotificationFanout struct {
	notifications notificationBatchWriter
	users         userLister
	profiles      roleLister
	applications  applicantLister
}

func NewNotificationFanout(bus EventBus.Bus, notifications notificationBatchWriter, users userLister,
	profiles roleLister, applications applicantLister) (*NotificationFanout, error) {

	f := &NotificationFanout{
		notifications: notifications,
		users:         users,
		profiles:      profiles,
		applications:  applications,
	}

	subscriptions := map[string]any{
		events.JobPostedTopic:                f.onJobPosted,
		events.JobUpdatedTopic:               f.onJobUpdated,
		events.JobAnnouncedTopic:             f.onJobAnnounced,
		events.ApplicationSubmittedTopic:     f.onApplicationSubmitted,
		events.ApplicationStatusChangedTopic: f.onApplicationStatusChanged,
	}
	for topic, handler := range subscriptions {
		if err := bus.Subscribe(topic, handler); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *NotificationFanout) onJobPosted(event events.JobPosted) {
	ctx := context.Background()
	recipients, err := f.users.ListIDs(ctx)
	if err != nil {
		logFanoutError("job posted", err)
		return
	}

	f.notify(ctx, "job_posted", recipients, models.Notification{
		Type:      models.NotificationJobPosted,
		Message:   fmt.Sprintf("New job posted: %s at %s", event.Job.Title, event.Job.Company),
		RelatedID: event.Job.ID,
		ActionURL: jobURL(event.Job.ID),
	})
}

func (f *NotificationFanout) onJobUpdated(event events.JobUpdated) {
	ctx := context.Background()
	recipients, err := f.users.ListIDs(ctx)
	if err != nil {
		logFanoutError("job updated", err)
		return
	}

	f.notify(ctx, "job_updated", recipients, models.Notification{
		Type:      models.NotificationJobUpdated,
		Message:   fmt.Sprintf("Job updated: %s at %s", event.Job.Title, event.Job.Company),
		RelatedID: event.Job.ID,
		ActionURL: jobURL(event.Job.ID),
	})
}

func (f *NotificationFanout) onJobAnnounced(event events.JobAnnounced) {
	ctx := context.Background()
	recipients, err := f.applications.ListStudentIDsByJob(ctx, event.Job.ID)
	if err != nil {
		logFanoutError("job announcement", err)
		return
	}

	f.notify(ctx, "job_announcement", recipients, models.Notification{
		Type:      models.NotificationJobAnnouncement,
		Message:   fmt.Sprintf("Update for %s at %s: %s", event.Job.Title, event.Job.Company, event.Update.Summary),
		RelatedID: event.Job.ID,
		ActionURL: jobURL(event.Job.ID),
	})
}

func (f *NotificationFanout) onApplicationSubmitted(event events.ApplicationSubmitted) {
	ctx := context.Background()

	f.notify(ctx, "application_submitted", []string{event.Application.StudentID}, models.Notification{
		Type:      models.NotificationApplicationSubmitted,
		Message:   fmt.Sprintf("Your application for %s at %s was submitted", event.Job.Title, event.Job.Company),
		RelatedID: event.Application.ID,
		ActionURL: "/applications",
	})

	admins, err := f.profiles.ListUserIDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		logFanoutError("application received", err)
		return
	}

	f.notify(ctx, "application_received", admins, models.Notification{
		Type:      models.NotificationApplicationReceived,
		Message:   fmt.Sprintf("New application for %s at %s", event.Job.Title, event.Job.Company),
		RelatedID: event.Application.ID,
		ActionURL: "/admin/applications",
	})
}

func (f *NotificationFanout) onApplicationStatusChanged(event events.ApplicationStatusChanged) {
	f.notify(context.Background(), "application_status_changed", []string{event.Application.StudentID}, models.Notification{
		Type: models.NotificationApplicationStatusChanged,
		Message: fmt.Sprintf("Your application for %s at %s is now %s",
			event.Job.Title, event.Job.Company, event.Application.Status),
		RelatedID: event.Application.ID,
		ActionURL: "/applications",
	})
}

func (f *NotificationFanout) notify(ctx context.Context, event string, recipients []string, template models.Notification) {
	recipients = lo.Uniq(lo.Compact(recipients))
	if len(recipients) == 0 {
		return
	}

	notifications := lo.Map(recipients, func(userID string, _ int) models.Notification {
		n := template
		n.UserID = userID
		return n
	})

	if err := f.notifications.AddBatch(ctx, notifications); err != nil {
		logFanoutError(event, err)
		return
	}

	metrics.FanoutSize.WithLabelValues(event).Observe(float64(len(notifications)))
	log.Debugf("%v: %d notifications created", event, len(notifications))
}

func logFanoutError(event string, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
		Errorf("failed to fan out %v notifications: %v", event, err)
}

func jobURL(jobID string) string {
	return "/jobs/" + jobID
}
