package config

import (
	"fmt"
	"time"
)

type CacheConfig struct {
	RedisURL     string        `mapstructure:"redis_url"`
	CompaniesTTL time.Duration `mapstructure:"companies_ttl"`
}

func (config CacheConfig) validate() error {
	if config.CompaniesTTL <= 0 {
		return fmt.Errorf("companies_ttl must be positive")
	}
	return nil
}

func (config CacheConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"cache.redis_url":     "REDIS_URL",
		"cache.companies_ttl": "COMPANIES_CACHE_TTL",
	})
}

type StorageConfig struct {
	ResumeBucket string `mapstructure:"resume_bucket"`
	ResumeDir    string `mapstructure:"resume_dir"`
}

func (config StorageConfig) validate() error {
	if config.ResumeBucket == "" && config.ResumeDir == "" {
		return fmt.Errorf("either resume_bucket or resume_dir must be set")
	}
	return nil
}

func (config StorageConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"storage.resume_bucket": "RESUME_BUCKET",
		"storage.resume_dir":    "RESUME_DIR",
	})
}

type TelegramConfig struct {
	Token     string `mapstructure:"token"`
	ChannelID int64  `mapstructure:"channel_id"`
	PortalURL string `mapstructure:"portal_url"`
}

func (config TelegramConfig) Enabled() bool {
	return config.Token != ""
}

func (config TelegramConfig) validate() error {
	if config.Token != "" && config.ChannelID == 0 {
		return fmt.Errorf("channel_id is required when token is set")
	}
	return nil
}

func (config TelegramConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"telegram.token":      "TG_TOKEN",
		"telegram.channel_id": "TG_CHANNEL_ID",
		"telegram.portal_url": "PORTAL_URL",
	})
}

type MaintenanceConfig struct {
	Schedule                  string `mapstructure:"schedule"`
	NotificationRetentionDays int    `mapstructure:"notification_retention_days"`
}

func (config MaintenanceConfig) validate() error {
	if config.Schedule == "" {
		return fmt.Errorf("missing variable: schedule")
	}
	if config.NotificationRetentionDays <= 0 {
		return fmt.Errorf("notification_retention_days must be greater than zero")
	}
	return nil
}

func (config MaintenanceConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"maintenance.schedule":                    "MAINTENANCE_SCHEDULE",
		"maintenance.notification_retention_days": "NOTIFICATION_RETENTION_DAYS",
	})
}
