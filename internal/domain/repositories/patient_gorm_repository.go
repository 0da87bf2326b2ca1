package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"patient-registry/internal/domain/entities"
	"patient-registry/internal/sqlerr"
)

// Compile-time check to ensure PatientGormRepository implements PatientRepositoryContract
var _ PatientRepositoryContract = (*PatientGormRepository)(nil)

// PatientGormRepository stores patients through GORM.
type PatientGormRepository struct {
	db *gorm.DB
}

// NewPatientGormRepository creates a new instance of PatientGormRepository.
func NewPatientGormRepository(db *gorm.DB) PatientRepositoryContract {
	return &PatientGormRepository{db: db}
}

func (r *PatientGormRepository) Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	if err := save(r.db.WithContext(ctx), patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// save updates by primary key and falls back to an insert when the row does
// not exist, which is what gorm's Save does for a non-zero key.
func save(tx *gorm.DB, patient *entities.Patient) error {
	if patient == nil {
		return errors.New("patient is nil")
	}
	if err := tx.Save(patient).Error; err != nil {
		return fmt.Errorf("saving patient %q: %w", patient.Nom, sqlerr.HandleError(err))
	}
	return nil
}

func (r *PatientGormRepository) SaveAll(ctx context.Context, patients []*entities.Patient) ([]*entities.Patient, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range patients {
			if err := save(tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientGormRepository) FindAll(ctx context.Context) ([]*entities.Patient, error) {
	var patients []*entities.Patient
	if err := r.db.WithContext(ctx).Order("id").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", sqlerr.HandleError(err))
	}
	return patients, nil
}

func (r *PatientGormRepository) FindByID(ctx context.Context, id int64) (*entities.Patient, error) {
	var patient entities.Patient
	err := r.db.WithContext(ctx).First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding patient %d: %w", id, sqlerr.HandleError(err))
	}
	return &patient, nil
}

func (r *PatientGormRepository) FindByNom(ctx context.Context, name string) ([]*entities.Patient, error) {
	return r.findWhere(ctx, "nom = ?", name)
}

func (r *PatientGormRepository) FindByNomLike(ctx context.Context, pattern string) ([]*entities.Patient, error) {
	return r.findWhere(ctx, "nom LIKE ?", LikePattern(pattern))
}

func (r *PatientGormRepository) findWhere(ctx context.Context, query string, arg string) ([]*entities.Patient, error) {
	var patients []*entities.Patient
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("searching patients (%s %q): %w", query, arg, sqlerr.HandleError(err))
	}
	return patients, nil
}

func (r *PatientGormRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Patient{}, id).Error; err != nil {
		return fmt.Errorf("deleting patient %d: %w", id, sqlerr.HandleError(err))
	}
	return nil
}

func (r *PatientGormRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.Patient{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("checking patient %d: %w", id, sqlerr.HandleError(err))
	}
	return n > 0, nil
}

func (r *PatientGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.Patient{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting patients: %w", sqlerr.HandleError(err))
	}
	return n, nil
}
