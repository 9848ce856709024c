package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger"`
	Server      ServerConfig      `mapstructure:"server"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	DB          DBConfig          `mapstructure:"db"`
	AI          AIConfig          `mapstructure:"ai"`
	Resume      ResumeConfig      `mapstructure:"resume"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

type section interface {
	validate() error
	bindEnvironmentVariables() error
}

func (config *Config) sections() map[string]section {
	return map[string]section{
		"LoggerConfig":      config.Logger,
		"ServerConfig":      config.Server,
		"MetricsConfig":     config.Metrics,
		"DBConfig":          config.DB,
		"AIConfig":          config.AI,
		"ResumeConfig":      config.Resume,
		"CacheConfig":       config.Cache,
		"StorageConfig":     config.Storage,
		"TelegramConfig":    config.Telegram,
		"MaintenanceConfig": config.Maintenance,
	}
}

func loadConfig(file string) (*Config, error) {

	viper.Reset()
	viper.SetConfigFile(file)

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logger.log_level", LevelInfo)
	viper.SetDefault("logger.app_name", "placement-portal")
	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.identity_header", "X-User-Id")
	viper.SetDefault("metrics.address", ":8080")
	viper.SetDefault("db.driver", DriverSqlite)
	viper.SetDefault("ai.provider", ProviderGemini)
	viper.SetDefault("ai.model", "gemini-1.5-flash")
	viper.SetDefault("resume.page_timeout", "10s")
	viper.SetDefault("resume.load_timeout", "30s")
	viper.SetDefault("resume.fetch_timeout", "30s")
	viper.SetDefault("resume.max_size_mb", 10)
	viper.SetDefault("cache.companies_ttl", "5m")
	viper.SetDefault("maintenance.schedule", "0 0 * * *")
	viper.SetDefault("maintenance.notification_retention_days", 90)
}

func bindEnvironmentVariables() error {
	var errs []error

	for name, s := range (&Config{}).sections() {
		if err := s.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config *Config) validate() error {
	var errs []error

	for name, s := range config.sections() {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
