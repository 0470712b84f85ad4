package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenRelational opens a GORM connection for the sqlite or postgres driver.
// Statements slower than slowThreshold are logged at WARN through log.
func OpenRelational(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if cfg.Driver == DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent modifies.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

const slowThreshold = 200 * time.Millisecond

// newGormLogger routes GORM's logger through slog
func newGormLogger(log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Discard
	}
	return logger.New(slogWriter{log: log}, logger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Warn("gorm", "message", fmt.Sprintf(format, args...))
}
