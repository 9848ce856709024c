package repositories

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(cfg config.DBConfig) (*DbContext, error) {

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSqlite:
		dialector = sqlite.Open(cfg.ConnectionString)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSqlite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer, and every :memory: connection is a separate database
		sqlDB.SetMaxOpenConns(1)
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"User", models.User{}},
		{"Profile", models.Profile{}},
		{"Mail", models.Mail{}},
		{"Job", models.Job{}},
		{"JobUpdate", models.JobUpdate{}},
		{"Application", models.Application{}},
		{"Notification", models.Notification{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	if err := c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_application_student_job ON applications (student_id, job_id)").
		Error; err != nil {
		return fmt.Errorf("failed to create application index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func (c *DbContext) Ping(ctx context.Context) error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}
