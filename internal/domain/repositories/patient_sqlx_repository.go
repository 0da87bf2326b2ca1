package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"patient-registry/internal/domain/entities"
	"patient-registry/internal/sqlerr"
)

const (
	patientColumns = `id, nom, date_naissance, malade, score`

	insertPatientSQL = `INSERT INTO patients (nom, date_naissance, malade, score)
		VALUES (?, ?, ?, ?) RETURNING id`
	insertPatientWithIDSQL = `INSERT INTO patients (id, nom, date_naissance, malade, score)
		VALUES (?, ?, ?, ?, ?)`
	updatePatientSQL = `UPDATE patients SET nom = ?, date_naissance = ?, malade = ?, score = ?
		WHERE id = ?`
)

// Compile-time check to ensure PatientSQLXRepository implements PatientRepositoryContract
var _ PatientRepositoryContract = (*PatientSQLXRepository)(nil)

// PatientSQLXRepository stores patients with hand-written SQL. Queries use
// '?' placeholders and are rebound for the driver in use.
type PatientSQLXRepository struct {
	db *sqlx.DB
}

func NewPatientSQLXRepository(db *sqlx.DB) PatientRepositoryContract {
	return &PatientSQLXRepository{db: db}
}

func (r *PatientSQLXRepository) Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	if err := upsert(ctx, r.db, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func upsert(ctx context.Context, q sqlx.ExtContext, patient *entities.Patient) error {
	if patient == nil {
		return errors.New("patient is nil")
	}

	if patient.IsNew() {
		var id int64
		err := sqlx.GetContext(ctx, q, &id, q.Rebind(insertPatientSQL),
			patient.Nom, patient.DateNaissance, patient.Malade, patient.Score)
		if err != nil {
			return fmt.Errorf("inserting patient %q: %w", patient.Nom, sqlerr.HandleError(err))
		}
		patient.ID = id
		return nil
	}

	res, err := q.ExecContext(ctx, q.Rebind(updatePatientSQL),
		patient.Nom, patient.DateNaissance, patient.Malade, patient.Score, patient.ID)
	if err != nil {
		return fmt.Errorf("updating patient %d: %w", patient.ID, sqlerr.HandleError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating patient %d: %w", patient.ID, err)
	}
	if n > 0 {
		return nil
	}

	_, err = q.ExecContext(ctx, q.Rebind(insertPatientWithIDSQL),
		patient.ID, patient.Nom, patient.DateNaissance, patient.Malade, patient.Score)
	if err != nil {
		return fmt.Errorf("inserting patient %d: %w", patient.ID, sqlerr.HandleError(err))
	}
	return nil
}

func (r *PatientSQLXRepository) SaveAll(ctx context.Context, patients []*entities.Patient) ([]*entities.Patient, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range patients {
		if err := upsert(ctx, tx, p); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing patients: %w", sqlerr.HandleError(err))
	}
	return patients, nil
}

func (r *PatientSQLXRepository) FindAll(ctx context.Context) ([]*entities.Patient, error) {
	return r.selectPatients(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY id`)
}

func (r *PatientSQLXRepository) FindByID(ctx context.Context, id int64) (*entities.Patient, error) {
	var patient entities.Patient
	err := r.db.GetContext(ctx, &patient,
		r.db.Rebind(`SELECT `+patientColumns+` FROM patients WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding patient %d: %w", id, sqlerr.HandleError(err))
	}
	return &patient, nil
}

func (r *PatientSQLXRepository) FindByNom(ctx context.Context, name string) ([]*entities.Patient, error) {
	return r.selectPatients(ctx, `SELECT `+patientColumns+` FROM patients WHERE nom = ? ORDER BY id`, name)
}

func (r *PatientSQLXRepository) FindByNomLike(ctx context.Context, pattern string) ([]*entities.Patient, error) {
	return r.selectPatients(ctx, `SELECT `+patientColumns+` FROM patients WHERE nom LIKE ? ORDER BY id`, LikePattern(pattern))
}

func (r *PatientSQLXRepository) selectPatients(ctx context.Context, query string, args ...interface{}) ([]*entities.Patient, error) {
	patients := []*entities.Patient{}
	if err := r.db.SelectContext(ctx, &patients, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying patients: %w", sqlerr.HandleError(err))
	}
	return patients, nil
}

func (r *PatientSQLXRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM patients WHERE id = ?`), id); err != nil {
		return fmt.Errorf("deleting patient %d: %w", id, sqlerr.HandleError(err))
	}
	return nil
}

func (r *PatientSQLXRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM patients WHERE id = ?)`), id)
	if err != nil {
		return false, fmt.Errorf("checking patient %d: %w", id, sqlerr.HandleError(err))
	}
	return exists, nil
}

func (r *PatientSQLXRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, fmt.Errorf("counting patients: %w", sqlerr.HandleError(err))
	}
	return n, nil
}
