package cache

import (
	"github.com/maxaizer/placement-portal/internal/config"
	log "github.com/sirupsen/logrus"
)

// New returns the redis cache when a redis url is configured, and the in-process one otherwise.
func New(cfg config.CacheConfig) (Cache, error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory cache")
		return NewMemory(cfg.CompaniesTTL), nil
	}

	log.Info("using redis cache")
	return NewRedis(cfg.RedisURL)
}
