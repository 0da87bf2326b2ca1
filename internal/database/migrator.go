package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"patient-registry/internal/config"
	"patient-registry/internal/domain/entities"
)

// Migrations are embedded per dialect; both trees must describe the same
// schema as entities.Patient.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

func migrationSource(driver string) (goose.Dialect, string, error) {
	switch driver {
	case config.DriverPostgres:
		return goose.DialectPostgres, "migrations/postgres", nil
	case config.DriverSQLite:
		return goose.DialectSQLite3, "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Migrate brings the schema up to date.
//
// versioned applies the embedded goose migrations, auto lets GORM derive the
// schema from the entity and none leaves the database untouched.
func (d *Database) Migrate(ctx context.Context, mode string) error {
	switch mode {
	case config.MigrationNone:
		d.log.Info().Msg("schema migration disabled")
		return nil
	case config.MigrationAuto:
		if err := d.DB.WithContext(ctx).AutoMigrate(&entities.Patient{}); err != nil {
			return fmt.Errorf("auto-migrating schema: %w", err)
		}
		d.log.Info().Msg("schema auto-migrated from entities")
		return nil
	case config.MigrationVersioned:
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}

	dialect, dir, err := migrationSource(d.cfg.Driver)
	if err != nil {
		return err
	}

	subtree, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	provider, err := goose.NewProvider(dialect, d.SQL, subtree)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if len(results) == 0 {
		d.log.Info().Msgf("database schema up to date, version %d", version)
	} else {
		d.log.Info().Msgf("migrated database schema, applied %d migration(s), now at version %d", len(results), version)
	}
	return nil
}
