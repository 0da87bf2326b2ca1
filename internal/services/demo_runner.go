package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"patient-registry/internal/config"
	"patient-registry/internal/domain/dtos"
	"patient-registry/internal/domain/entities"
)

var separator = strings.Repeat("*", 30)

// DemoPatientID is the id looked up, updated and deleted by the sequence.
const DemoPatientID int64 = 1

// DemoRunner runs the startup CRUD sequence once and prints every step.
type DemoRunner struct {
	service PatientServiceContract
	out     io.Writer
	format  string
	logger  zerolog.Logger
	now     func() time.Time
}

func NewDemoRunner(service PatientServiceContract, out io.Writer, format string, logger zerolog.Logger) *DemoRunner {
	return &DemoRunner{
		service: service,
		out:     out,
		format:  format,
		logger:  logger,
		now:     time.Now,
	}
}

// Run stops at the first failing step and returns its error.
func (r *DemoRunner) Run(ctx context.Context) error {
	log := r.logger.With().Str("run_id", uuid.NewString()).Logger()
	log.Info().Str("output", r.format).Msg("starting patient demo")

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"create", r.createPatients},
		{"list", r.listPatients},
		{"find_by_id", r.findByID},
		{"find_by_name", r.findByName},
		{"update", r.updatePatient},
		{"delete", r.deletePatient},
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("demo interrupted before %s: %w", step.name, err)
		}
		if i > 0 {
			r.println(separator)
		}
		if err := step.fn(ctx); err != nil {
			log.Error().Err(err).Str("step", step.name).Msg("demo step failed")
			return fmt.Errorf("demo step %s: %w", step.name, err)
		}
		log.Debug().Str("step", step.name).Msg("demo step done")
	}

	log.Info().Msg("patient demo finished")
	return nil
}

func (r *DemoRunner) createPatients(ctx context.Context) error {
	r.println("Creating patients...")
	born := r.now()
	_, err := r.service.CreatePatients(ctx, []dtos.CreatePatientRequest{
		{Nom: "Patient 1", DateNaissance: born, Malade: false, Score: 10},
		{Nom: "Patient 2", DateNaissance: born, Malade: true, Score: 20},
	})
	if err != nil {
		return err
	}
	r.println("Patients created.")
	return nil
}

func (r *DemoRunner) listPatients(ctx context.Context) error {
	r.println("List of patients:")
	patients, err := r.service.ListPatients(ctx)
	if err != nil {
		return err
	}
	return r.printAll(patients)
}

func (r *DemoRunner) findByID(ctx context.Context) error {
	r.println("Find patient by id:")
	patient, err := r.service.GetPatient(ctx, DemoPatientID)
	if err != nil {
		return err
	}
	return r.print(patient)
}

func (r *DemoRunner) findByName(ctx context.Context) error {
	r.println("Find patient by name:")
	patients, err := r.service.SearchPatients(ctx, "Patient")
	if err != nil {
		return err
	}
	return r.printAll(patients)
}

func (r *DemoRunner) updatePatient(ctx context.Context) error {
	r.println("Update patient:")
	nom := "Patient 1 Updated"
	updated, err := r.service.UpdatePatient(ctx, DemoPatientID, dtos.UpdatePatientRequest{Nom: &nom})
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}
	return r.print(updated)
}

func (r *DemoRunner) deletePatient(ctx context.Context) error {
	r.println("Delete patient:")
	if err := r.service.DeletePatient(ctx, DemoPatientID); err != nil {
		return err
	}
	r.println("Patient deleted.")
	return nil
}

func (r *DemoRunner) printAll(patients []*entities.Patient) error {
	for _, p := range patients {
		if err := r.print(p); err != nil {
			return err
		}
	}
	return nil
}

// print writes one patient per line; a nil patient prints as null.
func (r *DemoRunner) print(p *entities.Patient) error {
	if r.format == config.OutputJSON {
		if err := json.NewEncoder(r.out).Encode(dtos.ToPatientDTO(p)); err != nil {
			return fmt.Errorf("encoding patient: %w", err)
		}
		return nil
	}
	r.println(p.String())
	return nil
}

func (r *DemoRunner) println(line string) {
	fmt.Fprintln(r.out, line)
}
