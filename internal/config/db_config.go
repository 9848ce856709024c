package config

import (
	"fmt"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

type DBConfig struct {
	Driver           string `mapstructure:"driver"`
	ConnectionString string `mapstructure:"connection_string"`
}

func (config DBConfig) validate() error {
	if config.Driver != DriverSqlite && config.Driver != DriverPostgres {
		return fmt.Errorf("unsupported db driver: %q", config.Driver)
	}
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"db.driver":            "DB_DRIVER",
		"db.connection_string": "DB_CONNECTION_STRING",
	})
}
