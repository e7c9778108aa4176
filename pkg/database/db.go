// Package database opens the relational store and hands out the pool handle
// that every repository is constructed with.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/catalog/config"
)

// Config describes how to open a Pool.
type Config struct {
	Driver   string
	DSN      string
	PoolSize int
	// Timeout bounds every call made through Pool.Conn, connection
	// acquisition included.
	Timeout time.Duration
}

// ConfigFromEnv reads DB_DRIVER, DATABASE_DSN, DB_POOL_SIZE and DB_TIMEOUT_SECONDS.
func ConfigFromEnv() Config {
	return Config{
		Driver:   config.DatabaseDriver(),
		DSN:      config.DatabaseDSN(),
		PoolSize: config.DatabasePoolSize(),
		Timeout:  config.DatabaseTimeout(),
	}
}

// Pool is the shared handle to the store. It is safe for concurrent use.
type Pool struct {
	db      *gorm.DB
	timeout time.Duration
}

// Open opens the database, sizes the connection pool and verifies it is live.
func Open(cfg Config) (*Pool, error) {
	dialector, err := buildDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}

	size := cfg.PoolSize
	if size <= 0 {
		size = 10
	}
	sqlDB.SetMaxOpenConns(size)
	sqlDB.SetMaxIdleConns(size)
	if !inMemory(cfg) {
		// An in-memory SQLite database lives only as long as its connections.
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	p := &Pool{db: db, timeout: cfg.Timeout}
	if err := p.Ping(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return p, nil
}

// New wraps an already opened *gorm.DB.
func New(db *gorm.DB, timeout time.Duration) *Pool {
	return &Pool{db: db, timeout: timeout}
}

// Conn returns a session bound to ctx and the pool timeout.
// The caller must invoke the returned cancel func once the call completes.
func (p *Pool) Conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p.timeout <= 0 {
		return p.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	return p.db.WithContext(ctx), cancel
}

// DB returns the underlying handle for migrations and seeders.
func (p *Pool) DB() *gorm.DB { return p.db }

// Ping verifies a connection can be acquired within the pool timeout.
func (p *Pool) Ping(ctx context.Context) error {
	db, cancel := p.Conn(ctx)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database: get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(db.Statement.Context); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close releases every connection held by the pool.
func (p *Pool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func inMemory(cfg Config) bool {
	return cfg.Driver == "sqlite" && (cfg.DSN == ":memory:" || strings.Contains(cfg.DSN, "mode=memory"))
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}
