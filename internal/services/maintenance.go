package services

import (
	"context"
	"strings"
	"time"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/maxaizer/placement-portal/internal/logger"
	"github.com/maxaizer/placement-portal/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

type expiringJobsRepository interface {
	List(ctx context.Context, onlyActive bool) ([]models.Job, error)
	Deactivate(ctx context.Context, ids []string) (int64, error)
}

type NotificationCleanupRepository interface {
	RemoveReadOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Maintenance periodically closes jobs whose deadline passed and drops old read notifications.
type Maintenance struct {
	jobs          expiringJobsRepository
	notifications NotificationCleanupRepository
	companies     companiesCache
	cron          *cron.Cron
	retentionDays int
	now           func() time.Time
}

func NewMaintenance(jobs expiringJobsRepository, notifications NotificationCleanupRepository, companies companiesCache,
	schedule string, retentionDays int) (*Maintenance, error) {

	if retentionDays <= 0 {
		return nil, errors.New("notification retention in days must be greater than zero")
	}

	m := &Maintenance{
		jobs:          jobs,
		notifications: notifications,
		companies:     companies,
		cron:          cron.New(),
		retentionDays: retentionDays,
		now:           time.Now,
	}

	_, err := m.cron.AddFunc(schedule, func() { m.run(context.Background()) })
	if err != nil {
		return nil, errors.Wrap(err, "invalid maintenance schedule")
	}

	return m, nil
}

func (m *Maintenance) Start() {
	m.cron.Start()
	log.Infof("maintenance started, notification retention in days: %d", m.retentionDays)
}

func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}

func (m *Maintenance) run(ctx context.Context) {
	expired, err := m.expireJobs(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to expire jobs: %v", err)
	} else {
		log.Infof("expired jobs were deactivated at %v, affected rows: %v", m.now(), expired)
	}

	before := m.now().AddDate(0, 0, -m.retentionDays)
	removed, err := m.notifications.RemoveReadOlderThan(ctx, before)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clean old notifications: %v", err)
	} else {
		log.Infof("old notifications were cleaned at %v, affected rows: %v", m.now(), removed)
	}
}

func (m *Maintenance) expireJobs(ctx context.Context) (int64, error) {
	jobs, err := m.jobs.List(ctx, true)
	if err != nil {
		return 0, err
	}

	today := truncateToDay(m.now())
	expiredIDs := lo.FilterMap(jobs, func(job models.Job, _ int) (string, bool) {
		deadline, ok := parseDeadline(job.Deadline)
		return job.ID, ok && deadline.Before(today)
	})
	if len(expiredIDs) == 0 {
		return 0, nil
	}

	affected, err := m.jobs.Deactivate(ctx, expiredIDs)
	if err != nil {
		return 0, err
	}

	metrics.ExpiredJobsCounter.Add(float64(affected))
	m.companies.Invalidate(ctx)
	return affected, nil
}

// parseDeadline accepts the date formats seen in placement mails. Free-text deadlines never expire.
func parseDeadline(deadline string) (time.Time, bool) {
	deadline = strings.TrimSpace(deadline)
	if deadline == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, deadline); err == nil {
			return truncateToDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
