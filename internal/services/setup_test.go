package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/placement-portal/internal/cache"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/maxaizer/placement-portal/internal/repositories"
	"github.com/stretchr/testify/require"
)

const (
	adminID   = "admin-1"
	studentID = "student-1"
	otherID   = "student-2"
)

type testEnv struct {
	dbCtx         *repositories.DbContext
	bus           EventBus.Bus
	jobsRepo      *repositories.Jobs
	mailsRepo     *repositories.Mails
	notifRepo     *repositories.Notifications
	appsRepo      *repositories.Applications
	companies     *repositories.CachedCompanies
	jobs          *JobsService
	applications  *ApplicationsService
	users         *UsersService
	notifications *NotificationsService
	mails         *MailsService
	jobUpdates    *JobUpdatesService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(config.DBConfig{Driver: config.DriverSqlite, ConnectionString: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	bus := EventBus.New()
	env := &testEnv{
		dbCtx:     dbCtx,
		bus:       bus,
		jobsRepo:  repositories.NewJobsRepository(dbCtx.DB),
		mailsRepo: repositories.NewMailsRepository(dbCtx.DB),
		notifRepo: repositories.NewNotificationsRepository(dbCtx.DB),
		appsRepo:  repositories.NewApplicationsRepository(dbCtx.DB),
	}
	usersRepo := repositories.NewUsersRepository(dbCtx.DB)
	profiles := repositories.NewProfilesRepository(dbCtx.DB)
	updates := repositories.NewJobUpdatesRepository(dbCtx.DB)
	env.companies = repositories.NewCachedCompanies(env.jobsRepo, cache.NewMemory(time.Minute), time.Minute)

	env.jobs = NewJobsService(bus, env.jobsRepo, env.mailsRepo, env.appsRepo, env.companies, profiles)
	env.applications = NewApplicationsService(bus, env.appsRepo, env.jobsRepo, profiles)
	env.users = NewUsersService(usersRepo, profiles, []string{adminID})
	env.notifications = NewNotificationsService(env.notifRepo, profiles)
	env.mails = NewMailsService(env.mailsRepo, profiles)
	env.jobUpdates = NewJobUpdatesService(bus, updates, env.jobsRepo, profiles)

	_, err = NewNotificationFanout(bus, env.notifRepo, usersRepo, profiles, env.appsRepo)
	require.NoError(t, err)
	require.NoError(t, SubscribeCompaniesInvalidation(bus, env.companies))

	ctx := context.Background()
	_, err = env.users.CreateProfile(ctx, adminID, ProfileInput{Name: "Placement Cell"})
	require.NoError(t, err)
	_, err = env.users.CreateProfile(ctx, studentID, ProfileInput{Name: "Asha", Role: "student"})
	require.NoError(t, err)
	_, err = env.users.CreateProfile(ctx, otherID, ProfileInput{Name: "Ravi", Role: "student"})
	require.NoError(t, err)

	return env
}

func (env *testEnv) postJob(t *testing.T, title, company string) *models.Job {
	t.Helper()
	job, err := env.jobs.Create(context.Background(), adminID, JobInput{Title: title, Company: company, Type: "internship"})
	require.NoError(t, err)
	return job
}

func (env *testEnv) notificationsOf(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := env.notifRepo.ListByUser(context.Background(), userID, 0)
	require.NoError(t, err)
	return list
}
