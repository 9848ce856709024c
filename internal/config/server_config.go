package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	Mode            string   `mapstructure:"mode"`
	WebhookSecret   string   `mapstructure:"webhook_secret"`
	IdentityHeader  string   `mapstructure:"identity_header"`
	CorsOrigins     []string `mapstructure:"cors_origins"`
	BootstrapAdmins []string `mapstructure:"bootstrap_admins"`
}

func (config ServerConfig) validate() error {

	var missingFields []string

	if config.Address == "" {
		missingFields = append(missingFields, "address")
	}

	if config.WebhookSecret == "" {
		missingFields = append(missingFields, "webhook_secret")
	}

	if config.IdentityHeader == "" {
		missingFields = append(missingFields, "identity_header")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"server.address":         "SERVER_ADDRESS",
		"server.mode":            "GIN_MODE",
		"server.webhook_secret":  "WEBHOOK_SECRET",
		"server.identity_header": "IDENTITY_HEADER",
	})
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

func (config MetricsConfig) validate() error {
	if config.Address == "" {
		return fmt.Errorf("missing variable: metrics address")
	}
	return nil
}

func (config MetricsConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{"metrics.address": "METRICS_ADDRESS"})
}
