package services

import (
	"context"
	"testing"
	"time"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDeadline(t *testing.T) {
	cases := map[string]bool{
		"2025-03-10":     true,
		"10/03/2025":     true,
		"10 March 2025":  true,
		"March 10, 2025": true,
		"ASAP":           false,
		"":               false,
	}
	for input, ok := range cases {
		deadline, parsed := parseDeadline(input)
		assert.Equal(t, ok, parsed, input)
		if ok {
			assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), deadline, input)
		}
	}
}

func Test_Maintenance_ExpiresPastDeadlines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	create := func(title, deadline string) *models.Job {
		job, err := env.jobs.Create(ctx, adminID, JobInput{Title: title, Company: title, Deadline: deadline})
		require.NoError(t, err)
		return job
	}
	past := create("Past", "2025-01-01")
	today := create("Today", "2025-06-15")
	future := create("Future", "2025-12-31")
	freeText := create("Rolling", "rolling basis")

	m, err := NewMaintenance(env.jobsRepo, env.notifRepo, env.companies, "0 0 * * *", 90)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	companies, err := env.jobs.ActiveCompanies(ctx)
	require.NoError(t, err)
	assert.Contains(t, companies, "Past")

	m.run(ctx)

	active, err := env.jobsRepo.List(ctx, true)
	require.NoError(t, err)
	ids := lo.Map(active, func(j models.Job, _ int) string { return j.ID })
	assert.NotContains(t, ids, past.ID)
	assert.ElementsMatch(t, []string{today.ID, future.ID, freeText.ID}, ids)

	companies, err = env.jobs.ActiveCompanies(ctx)
	require.NoError(t, err)
	assert.NotContains(t, companies, "Past")
}

func Test_Maintenance_RemovesOldReadNotifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, env.notifRepo.AddBatch(ctx, []models.Notification{
		{UserID: studentID, Message: "old", Read: true, CreatedAt: now.AddDate(0, 0, -120)},
		{UserID: studentID, Message: "old unread", CreatedAt: now.AddDate(0, 0, -120)},
		{UserID: studentID, Message: "recent", Read: true, CreatedAt: now},
	}))

	m, err := NewMaintenance(env.jobsRepo, env.notifRepo, env.companies, "0 0 * * *", 90)
	require.NoError(t, err)
	m.run(ctx)

	left := lo.Map(env.notificationsOf(t, studentID), func(n models.Notification, _ int) string { return n.Message })
	assert.ElementsMatch(t, []string{"old unread", "recent"}, left)
}

func Test_NewMaintenance_RejectsBadSettings(t *testing.T) {
	_, err := NewMaintenance(nil, nil, nil, "0 0 * * *", 0)
	assert.Error(t, err)

	_, err = NewMaintenance(nil, nil, nil, "not a schedule", 30)
	assert.Error(t, err)
}
