package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	DSN          string
	MaxOpenConns int
	ConnMaxIdle  time.Duration
	Debug        bool
}

// Connect opens the Postgres pool and verifies it with a ping.
func Connect(opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if !opts.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(opts.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}
	if opts.ConnMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdle)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var isolation string
	if err := db.Raw("SELECT current_setting('transaction_isolation')").Scan(&isolation).Error; err == nil {
		log.Printf("[DB POOL] connected, max_open=%d isolation=%s", opts.MaxOpenConns, isolation)
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[DB POOL] close error: %v", err)
	}
}
