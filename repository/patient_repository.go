package repository

import (
	"context"

	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
)

// PatientRepository persists patients under KeyPatients.
type PatientRepository struct {
	patients *collection[models.Patient]
	newID    IDGenerator
}

// NewPatientRepository creates a new PatientRepository.
func NewPatientRepository(s storage.Storage, opts ...Option) *PatientRepository {
	o := buildOptions(opts)
	return &PatientRepository{
		patients: newCollection[models.Patient](KeyPatients, s, o.log),
		newID:    o.newID,
	}
}

// List returns all patients in insertion order.
func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	return r.patients.list(ctx)
}

// GetByID fetches a patient by its ID. Returns nil, nil when absent.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	patients, err := r.patients.list(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexPatient(patients, id); i >= 0 {
		p := patients[i]
		return &p, nil
	}
	return nil, nil
}

// Create appends a new patient with a freshly assigned ID.
// Duplicate names or emails are allowed.
func (r *PatientRepository) Create(ctx context.Context, in models.PatientInput) (*models.Patient, error) {
	var created models.Patient
	err := r.patients.mutate(ctx, func(items []models.Patient) ([]models.Patient, bool, error) {
		id, err := freshID(r.newID, "p", func(id string) bool { return indexPatient(items, id) >= 0 })
		if err != nil {
			return nil, false, err
		}
		created = models.NewPatient(id, in)
		return append(items, created), true, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the patient with the given ID.
// Returns nil, nil and writes nothing when the ID is unknown.
func (r *PatientRepository) Update(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error) {
	var updated *models.Patient
	err := r.patients.mutate(ctx, func(items []models.Patient) ([]models.Patient, bool, error) {
		i := indexPatient(items, id)
		if i < 0 {
			return items, false, nil
		}
		patch.Apply(&items[i])
		p := items[i]
		updated = &p
		return items, true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func indexPatient(patients []models.Patient, id string) int {
	for i := range patients {
		if patients[i].ID == id {
			return i
		}
	}
	return -1
}
