package repository

import (
	"context"

	"dentalClinicManagement/models"
)

// UserRepositoryI defines read operations on User entities. Users are only
// written by the seed step.
type UserRepositoryI interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// PatientRepositoryI defines operations on Patient entities.
type PatientRepositoryI interface {
	List(ctx context.Context) ([]models.Patient, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	Create(ctx context.Context, in models.PatientInput) (*models.Patient, error)
	Update(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error)
}

// IncidentRepositoryI defines operations on Incident entities.
type IncidentRepositoryI interface {
	List(ctx context.Context) ([]models.Incident, error)
	GetByID(ctx context.Context, id string) (*models.Incident, error)
	ListByPatientID(ctx context.Context, patientID string) ([]models.Incident, error)
	Create(ctx context.Context, in models.IncidentInput) (*models.Incident, error)
	Update(ctx context.Context, id string, patch models.IncidentPatch) (*models.Incident, error)
}

var (
	_ UserRepositoryI     = (*UserRepository)(nil)
	_ PatientRepositoryI  = (*PatientRepository)(nil)
	_ IncidentRepositoryI = (*IncidentRepository)(nil)
)
