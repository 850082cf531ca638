package connectors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"

	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

// SqliteConnector hands out gorm handles on the portal's metadata database.
type SqliteConnector interface {
	DB(ctx context.Context) *gorm.DB
	Migrate(models ...interface{}) error
}

type sqliteConnector struct {
	logger commons.Logger
	db     *gorm.DB
}

// NewSqliteConnector opens (creating if needed) the sqlite database at path.
func NewSqliteConnector(logger commons.Logger, path string) (SqliteConnector, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create database directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database %s: %w", path, err)
	}
	logger.Infof("sqlite connector ready: %s", path)
	return &sqliteConnector{logger: logger, db: db}, nil
}

func (c *sqliteConnector) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

func (c *sqliteConnector) Migrate(models ...interface{}) error {
	return c.db.AutoMigrate(models...)
}
