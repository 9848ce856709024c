package repositories

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maxaizer/placement-portal/internal/logger"
)

const activeCompaniesKey = "companies:active"

type companiesRepository interface {
	ActiveCompanies(ctx context.Context) ([]string, error)
}

type stringListCache interface {
	GetStrings(ctx context.Context, key string) ([]string, bool, error)
	SetStrings(ctx context.Context, key string, values []string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedCompanies keeps the distinct active company names until a job mutation invalidates them.
type CachedCompanies struct {
	repo  companiesRepository
	cache stringListCache
	ttl   time.Duration
}

func NewCachedCompanies(repo companiesRepository, cache stringListCache, ttl time.Duration) *CachedCompanies {
	return &CachedCompanies{repo: repo, cache: cache, ttl: ttl}
}

func (c *CachedCompanies) ActiveCompanies(ctx context.Context) ([]string, error) {
	values, found, err := c.cache.GetStrings(ctx, activeCompaniesKey)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("failed to read companies from cache: %v", err)
	} else if found {
		return values, nil
	}

	companies, err := c.repo.ActiveCompanies(ctx)
	if err != nil {
		return nil, err
	}

	if err = c.cache.SetStrings(ctx, activeCompaniesKey, companies, c.ttl); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("failed to cache companies: %v", err)
	}
	return companies, nil
}

func (c *CachedCompanies) Invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx, activeCompaniesKey); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("failed to invalidate companies cache: %v", err)
	}
}
