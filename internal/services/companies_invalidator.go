package services

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/placement-portal/internal/domain/events"
)

type companiesCache interface {
	Invalidate(ctx context.Context)
}

// SubscribeCompaniesInvalidation drops the cached active companies whenever a job changes.
func SubscribeCompaniesInvalidation(bus EventBus.Bus, cache companiesCache) error {
	invalidate := func() { cache.Invalidate(context.Background()) }

	if err := bus.Subscribe(events.JobPostedTopic, func(events.JobPosted) { invalidate() }); err != nil {
		return err
	}
	if err := bus.Subscribe(events.JobUpdatedTopic, func(events.JobUpdated) { invalidate() }); err != nil {
		return err
	}
	return bus.Subscribe(events.JobDeletedTopic, func(events.JobDeleted) { invalidate() })
}
