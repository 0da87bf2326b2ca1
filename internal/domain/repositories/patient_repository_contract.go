package repositories

import (
	"context"
	"strings"

	"patient-registry/internal/domain/entities"
)

// PatientRepositoryContract defines the persistence operations over patients.
//
// Lookups that match nothing return a nil patient or an empty slice with a nil
// error; errors are reserved for store failures.
type PatientRepositoryContract interface {
	// Save inserts the patient when its ID is zero and updates the row with
	// that ID otherwise. The returned patient carries the assigned ID.
	Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error)
	// SaveAll saves every patient in input order within a single transaction.
	SaveAll(ctx context.Context, patients []*entities.Patient) ([]*entities.Patient, error)
	FindAll(ctx context.Context) ([]*entities.Patient, error)
	// FindByID returns nil, nil when no row has the given id.
	FindByID(ctx context.Context, id int64) (*entities.Patient, error)
	// FindByNom matches rows where nom = name.
	FindByNom(ctx context.Context, name string) ([]*entities.Patient, error)
	// FindByNomLike matches rows where nom LIKE pattern. See LikePattern.
	FindByNomLike(ctx context.Context, pattern string) ([]*entities.Patient, error)
	// DeleteByID removes the row; a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// LikePattern turns a name fragment into a LIKE pattern. Input without a '%'
// wildcard is wrapped as a substring match; anything else is passed through.
func LikePattern(pattern string) string {
	if strings.Contains(pattern, "%") {
		return pattern
	}
	return "%" + pattern + "%"
}
