package services

import (
	"context"
	"testing"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JobUpdates_FromMailMatchesCompanyIgnoringCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := env.postJob(t, "SDE", "Acme Corp")
	_, err := env.applications.Apply(ctx, studentID, job.ID)
	require.NoError(t, err)

	update, err := env.jobUpdates.CreateFromMail(ctx, MailJobUpdateInput{
		Summary: "Online test on Monday", MailID: "mail-2", CompanyName: "ACME CORP"})
	require.NoError(t, err)
	assert.Equal(t, job.ID, update.JobID)

	updates, err := env.jobUpdates.ListByJob(ctx, studentID, job.ID)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "Online test on Monday", updates[0].Summary)

	announcements := lo.Filter(env.notificationsOf(t, studentID), func(n models.Notification, _ int) bool {
		return n.Type == models.NotificationJobAnnouncement
	})
	assert.Len(t, announcements, 1)

	otherAnnouncements := lo.Filter(env.notificationsOf(t, otherID), func(n models.Notification, _ int) bool {
		return n.Type == models.NotificationJobAnnouncement
	})
	assert.Empty(t, otherAnnouncements)
}

func Test_JobUpdates_FromMailWithoutActiveJob(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.jobUpdates.CreateFromMail(context.Background(), MailJobUpdateInput{
		Summary: "s", MailID: "m", CompanyName: "Nobody"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = env.jobUpdates.CreateFromMail(context.Background(), MailJobUpdateInput{Summary: "s"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func Test_JobUpdates_CreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	job := env.postJob(t, "SDE", "Acme")

	_, err := env.jobUpdates.Create(context.Background(), studentID, JobUpdateInput{JobID: job.ID, Summary: "s"})
	assert.EqualError(t, err, "Not authorized")

	_, err = env.jobUpdates.Create(context.Background(), adminID, JobUpdateInput{JobID: "missing", Summary: "s"})
	assert.EqualError(t, err, "Job not found")

	_, err = env.jobUpdates.Create(context.Background(), adminID, JobUpdateInput{JobID: job.ID, Summary: "Results out"})
	assert.NoError(t, err)
}
