package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"patient-registry/internal/config"
	"patient-registry/internal/database"
	"patient-registry/internal/domain/repositories"
	"patient-registry/internal/logger"
	"patient-registry/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging, cfg.Primary.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("patient registry failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	startTime := time.Now()

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx, cfg.Migration.Mode); err != nil {
		return err
	}

	repo, err := newRepository(ctx, cfg.Repository.Backend, db)
	if err != nil {
		return err
	}
	log.Info().Str("backend", cfg.Repository.Backend).Msg("patient repository ready")

	svc := services.NewPatientService(repo, log)
	if err := services.NewDemoRunner(svc, os.Stdout, cfg.Demo.Output, log).Run(ctx); err != nil {
		return err
	}

	log.Debug().Msgf("Execution time: %s", time.Since(startTime))
	return nil
}

func newRepository(ctx context.Context, backend string, db *database.Database) (repositories.PatientRepositoryContract, error) {
	switch backend {
	case config.BackendGorm:
		return repositories.NewPatientGormRepository(db.DB), nil
	case config.BackendSQLX:
		x, err := db.SQLX(ctx)
		if err != nil {
			return nil, err
		}
		return repositories.NewPatientSQLXRepository(x), nil
	default:
		return nil, fmt.Errorf("unknown repository backend %q", backend)
	}
}
