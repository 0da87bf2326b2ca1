package services

import (
	"context"

	"patient-registry/internal/domain/dtos"
	"patient-registry/internal/domain/entities"
)

// PatientServiceContract defines the patient operations used by the startup
// sequence. Lookups that match nothing return nil without an error.
type PatientServiceContract interface {
	// CreatePatients validates the requests and saves them as one batch.
	CreatePatients(ctx context.Context, reqs []dtos.CreatePatientRequest) ([]*entities.Patient, error)
	ListPatients(ctx context.Context) ([]*entities.Patient, error)
	GetPatient(ctx context.Context, id int64) (*entities.Patient, error)
	// FindPatientsByName matches the name exactly.
	FindPatientsByName(ctx context.Context, nom string) ([]*entities.Patient, error)
	// SearchPatients matches names with a LIKE pattern, wrapping bare
	// fragments as a substring match.
	SearchPatients(ctx context.Context, pattern string) ([]*entities.Patient, error)
	// UpdatePatient loads the patient, applies the set fields and saves it.
	// It returns nil, nil when the patient does not exist.
	UpdatePatient(ctx context.Context, id int64, req dtos.UpdatePatientRequest) (*entities.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
}
