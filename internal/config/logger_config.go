package config

import (
	"errors"
	"fmt"
)

type Level string

const (
	LevelInfo    Level = "INFO"
	LevelDebug   Level = "DEBUG"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
	LevelFatal   Level = "FATAL"
)

type LoggerConfig struct {
	LogLevel     Level `mapstructure:"log_level"`
	AppName      string   `mapstructure:"app_name"`
	LokiURL      string   `mapstructure:"loki_url"`
	LokiUser     string   `mapstructure:"loki_user"`
	LokiPassword string   `mapstructure:"loki_password"`
	OutputFile   string   `mapstructure:"output_file"`
}

func (config LoggerConfig) validate() error {
	var errs []error

	switch config.LogLevel {
	case LevelInfo, LevelDebug, LevelWarning, LevelError, LevelFatal:
	case "":
		errs = append(errs, fmt.Errorf("missing variable: log_level"))
	default:
		errs = append(errs, fmt.Errorf("unknown log_level: %s", config.LogLevel))
	}

	if config.LokiURL != "" && config.AppName == "" {
		errs = append(errs, fmt.Errorf("app_name is required when loki_url is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config LoggerConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"logger.loki_url":      "LOKI_URL",
		"logger.loki_user":     "LOKI_USER",
		"logger.loki_password": "LOKI_PASSWORD",
		"logger.app_name":      "APP_NAME",
		"logger.log_level":     "LOG_LEVEL",
		"logger.output_file":   "LOG_FILE",
	})
}
