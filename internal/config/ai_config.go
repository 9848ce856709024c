package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderVertex    = "vertex"
	ProviderLangchain = "langchain"
)

type AIConfig struct {
	Provider             string  `mapstructure:"provider"`
	Key                  string  `mapstructure:"key"`
	Model                string  `mapstructure:"model"`
	ProjectID            string  `mapstructure:"project_id"`
	Region               string  `mapstructure:"region"`
	MaxRequestsPerMinute float32 `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32 `mapstructure:"max_requests_per_day"`
}

func (config AIConfig) validate() error {

	var missingFields []string

	if config.Model == "" {
		missingFields = append(missingFields, "model")
	}

	switch config.Provider {
	case ProviderGemini, ProviderLangchain:
		if config.Key == "" {
			missingFields = append(missingFields, "key")
		}
	case ProviderVertex:
		if config.ProjectID == "" {
			missingFields = append(missingFields, "project_id")
		}
		if config.Region == "" {
			missingFields = append(missingFields, "region")
		}
	default:
		return fmt.Errorf("unknown ai provider: %q", config.Provider)
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config AIConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"ai.provider":                "AI_PROVIDER",
		"ai.key":                     "AI_KEY",
		"ai.model":                   "AI_MODEL",
		"ai.project_id":              "AI_PROJECT_ID",
		"ai.region":                  "AI_REGION",
		"ai.max_requests_per_minute": "AI_MAX_REQUESTS_PER_MINUTE",
		"ai.max_requests_per_day":    "AI_MAX_REQUESTS_PER_DAY",
	})
}

type ResumeConfig struct {
	PageTimeout  time.Duration `mapstructure:"page_timeout"`
	LoadTimeout  time.Duration `mapstructure:"load_timeout"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	MaxSizeMB    int           `mapstructure:"max_size_mb"`
}

func (config ResumeConfig) validate() error {
	if config.PageTimeout <= 0 || config.LoadTimeout <= 0 || config.FetchTimeout <= 0 {
		return fmt.Errorf("resume timeouts must be positive")
	}
	if config.MaxSizeMB <= 0 {
		return fmt.Errorf("max_size_mb must be positive")
	}
	return nil
}

func (config ResumeConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"resume.page_timeout":  "RESUME_PAGE_TIMEOUT",
		"resume.load_timeout":  "RESUME_LOAD_TIMEOUT",
		"resume.fetch_timeout": "RESUME_FETCH_TIMEOUT",
		"resume.max_size_mb":   "RESUME_MAX_SIZE_MB",
	})
}
