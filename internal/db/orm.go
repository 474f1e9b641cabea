package db

import (
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/logging"
	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the portal owns, in migration order.
var Models = []any{
	&gormModels.User{},
	&gormModels.SavedLocation{},
	&gormModels.PaymentMethod{},
	&gormModels.Helicopter{},
	&gormModels.Booking{},
}

// OpenORM connects GORM to sqlite or postgres and migrates the schema.
func OpenORM(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	if driver == "sqlite" {
		// every new sqlite connection to :memory: is a fresh database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logging.Info("Connected via GORM", "driver", driver)
	return db, nil
}
