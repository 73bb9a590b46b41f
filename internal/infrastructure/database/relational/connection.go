// internal/infrastructure/database/relational/connection.go
package relational

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the SQL database selected by STORE_DRIVER and applies pool settings
func Open(cfg *config.Config, logger logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.GetDatabaseDSN(),
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", cfg.Store.Driver)
	}

	gormCfg := &gorm.Config{
		Logger:                 newGormLogger(logger, cfg.App.Debug),
		SkipDefaultTransaction: true,
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Store.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db handle: %w", err)
	}
	if cfg.Store.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Store.Driver, err)
	}

	logger.WithField("driver", cfg.Store.Driver).Info("Database connection established")
	return db, nil
}

// newGormLogger routes gorm's output through logrus. Only debug mode logs,
// at warn level and above.
func newGormLogger(logger logrus.FieldLogger, debug bool) gormlogger.Interface {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Warn
	}
	return gormlogger.New(logger.WithField("component", "gorm"), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
