// Package database opens the registry store through GORM and owns its
// connection pool and schema migrations.
//
// Postgres is reached through gorm.io/driver/postgres (pgx underneath); the
// sqlx repository opens its own lib/pq pool against the same DSN. SQLite uses
// the pure-Go glebarez driver and shares one *sql.DB between GORM and sqlx,
// which an in-memory database requires.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"patient-registry/internal/config"
	"patient-registry/internal/logger"
)

func init() {
	// glebarez registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver(sqlite.DriverName, sqlx.QUESTION)
}

// Database wraps the GORM handle and the pool underneath it.
type Database struct {
	DB  *gorm.DB
	SQL *sql.DB

	cfg  config.DatabaseConfig
	sqlx *sqlx.DB
	log  zerolog.Logger
}

// PostgresDSN builds a postgres:// URL, escaping credentials.
func PostgresDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(cfg.SSLMode)
	}
	return u.String()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// New opens the store described by cfg and pings it within PingTimeout.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Database, error) {
	dial, err := dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.NewGormLogger(log, cfg.Logging.SlowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite && isMemory(cfg.Database.Path) {
		// every new connection would see its own empty database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")

	return &Database{
		DB:  db,
		SQL: sqlDB,
		cfg: cfg.Database,
		log: log,
	}, nil
}

// SQLX returns the sqlx handle used by the hand-written SQL repository. It is
// opened lazily and closed together with the Database.
func (d *Database) SQLX(ctx context.Context) (*sqlx.DB, error) {
	if d.sqlx != nil {
		return d.sqlx, nil
	}

	switch d.cfg.Driver {
	case config.DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", PostgresDSN(d.cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to connect sqlx: %w", err)
		}
		db.SetMaxOpenConns(d.cfg.MaxOpenConns)
		db.SetMaxIdleConns(d.cfg.MaxIdleConns)
		db.SetConnMaxLifetime(d.cfg.ConnMaxLifetime)
		d.sqlx = db
	default:
		d.sqlx = sqlx.NewDb(d.SQL, sqlite.DriverName)
	}
	return d.sqlx, nil
}

// Close releases every pool owned by the Database.
func (d *Database) Close() error {
	d.log.Info().Msg("closing database connection pool")

	if d.sqlx != nil && d.cfg.Driver == config.DriverPostgres {
		if err := d.sqlx.Close(); err != nil {
			return fmt.Errorf("failed to close sqlx pool: %w", err)
		}
	}
	return d.SQL.Close()
}
