package services

import (
	"context"
	"errors"
	"sync/atomic"

	"patient-registry/internal/domain/entities"
	"patient-registry/internal/domain/repositories"
)

// --- MockPatientRepository ---
// Compile-time check to ensure MockPatientRepository implements PatientRepositoryContract
var _ repositories.PatientRepositoryContract = (*MockPatientRepository)(nil)

// MockPatientRepository is a mock implementation of PatientRepositoryContract.
// Methods without a Func return an error unless noted.
type MockPatientRepository struct {
	SaveFunc          func(ctx context.Context, patient *entities.Patient) (*entities.Patient, error)
	SaveAllFunc       func(ctx context.Context, patients []*entities.Patient) ([]*entities.Patient, error)
	FindAllFunc       func(ctx context.Context) ([]*entities.Patient, error)
	FindByIDFunc      func(ctx context.Context, id int64) (*entities.Patient, error)
	FindByNomFunc     func(ctx context.Context, name string) ([]*entities.Patient, error)
	FindByNomLikeFunc func(ctx context.Context, pattern string) ([]*entities.Patient, error)
	DeleteByIDFunc    func(ctx context.Context, id int64) error

	SaveFuncCallCount       int32
	SaveAllFuncCallCount    int32
	DeleteByIDFuncCallCount int32
}

func (m *MockPatientRepository) Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	atomic.AddInt32(&m.SaveFuncCallCount, 1)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, patient)
	}
	return patient, nil
}

func (m *MockPatientRepository) SaveAll(ctx context.Context, patients []*entities.Patient) ([]*entities.Patient, error) {
	atomic.AddInt32(&m.SaveAllFuncCallCount, 1)
	if m.SaveAllFunc != nil {
		return m.SaveAllFunc(ctx, patients)
	}
	return patients, nil
}

func (m *MockPatientRepository) FindAll(ctx context.Context) ([]*entities.Patient, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id int64) (*entities.Patient, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockPatientRepository) FindByNom(ctx context.Context, name string) ([]*entities.Patient, error) {
	if m.FindByNomFunc != nil {
		return m.FindByNomFunc(ctx, name)
	}
	return nil, errors.New("FindByNomFunc not implemented in mock")
}

func (m *MockPatientRepository) FindByNomLike(ctx context.Context, pattern string) ([]*entities.Patient, error) {
	if m.FindByNomLikeFunc != nil {
		return m.FindByNomLikeFunc(ctx, pattern)
	}
	return nil, errors.New("FindByNomLikeFunc not implemented in mock")
}

func (m *MockPatientRepository) DeleteByID(ctx context.Context, id int64) error {
	atomic.AddInt32(&m.DeleteByIDFuncCallCount, 1)
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *MockPatientRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	p, err := m.FindByID(ctx, id)
	return p != nil, err
}

func (m *MockPatientRepository) Count(ctx context.Context) (int64, error) {
	patients, err := m.FindAll(ctx)
	return int64(len(patients)), err
}
