package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"patient-registry/internal/domain/dtos"
	"patient-registry/internal/domain/entities"
	"patient-registry/internal/domain/repositories"
)

// ErrInvalidID is returned for ids the store can never have assigned.
var ErrInvalidID = errors.New("patient id must be positive")

// PatientServiceImpl implements PatientServiceContract on top of a repository.
type PatientServiceImpl struct {
	patientRepo repositories.PatientRepositoryContract
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewPatientService creates a new instance of PatientServiceImpl.
func NewPatientService(repo repositories.PatientRepositoryContract, logger zerolog.Logger) PatientServiceContract {
	return &PatientServiceImpl{
		patientRepo: repo,
		validate:    validator.New(),
		logger:      logger.With().Str("component", "patient_service").Logger(),
	}
}

func (s *PatientServiceImpl) CreatePatients(ctx context.Context, reqs []dtos.CreatePatientRequest) ([]*entities.Patient, error) {
	patients := make([]*entities.Patient, 0, len(reqs))
	for i, req := range reqs {
		if err := s.validate.Struct(req); err != nil {
			return nil, fmt.Errorf("invalid patient at index %d: %w", i, err)
		}
		patients = append(patients, req.ToEntity())
	}

	saved, err := s.patientRepo.SaveAll(ctx, patients)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(patients)).Msg("failed to create patients")
		return nil, fmt.Errorf("failed to create patients: %w", err)
	}

	s.logger.Info().Int("count", len(saved)).Msg("patients created")
	return saved, nil
}

func (s *PatientServiceImpl) ListPatients(ctx context.Context) ([]*entities.Patient, error) {
	patients, err := s.patientRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	s.logger.Debug().Int("count", len(patients)).Msg("patients listed")
	return patients, nil
}

func (s *PatientServiceImpl) GetPatient(ctx context.Context, id int64) (*entities.Patient, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	patient, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient %d: %w", id, err)
	}
	if patient == nil {
		s.logger.Debug().Int64("patient_id", id).Msg("patient not found")
	}
	return patient, nil
}

func (s *PatientServiceImpl) FindPatientsByName(ctx context.Context, nom string) ([]*entities.Patient, error) {
	patients, err := s.patientRepo.FindByNom(ctx, nom)
	if err != nil {
		return nil, fmt.Errorf("failed to find patients named %q: %w", nom, err)
	}
	return patients, nil
}

func (s *PatientServiceImpl) SearchPatients(ctx context.Context, pattern string) ([]*entities.Patient, error) {
	patients, err := s.patientRepo.FindByNomLike(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients by %q: %w", pattern, err)
	}
	s.logger.Debug().Str("pattern", pattern).Int("count", len(patients)).Msg("patients searched")
	return patients, nil
}

func (s *PatientServiceImpl) UpdatePatient(ctx context.Context, id int64, req dtos.UpdatePatientRequest) (*entities.Patient, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid update for patient %d: %w", id, err)
	}

	patient, err := s.GetPatient(ctx, id)
	if err != nil || patient == nil {
		return nil, err
	}

	req.ApplyTo(patient)
	saved, err := s.patientRepo.Save(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient %d: %w", id, err)
	}

	s.logger.Info().Int64("patient_id", id).Msg("patient updated")
	return saved, nil
}

func (s *PatientServiceImpl) DeletePatient(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.patientRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient %d: %w", id, err)
	}
	s.logger.Info().Int64("patient_id", id).Msg("patient deleted")
	return nil
}
