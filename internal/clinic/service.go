// Package clinic is the data-access surface the presentation layer talks to.
package clinic

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dentalClinicManagement/internal/auth"
	"dentalClinicManagement/internal/seed"
	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

// RecentLimit is the number of incidents the dashboard lists.
const RecentLimit = 5

// Service bundles the repositories, the session manager and the seeder.
type Service struct {
	Users     *repository.UserRepository
	Patients  *repository.PatientRepository
	Incidents *repository.IncidentRepository
	Sessions  *auth.Manager
	Seeder    *seed.Seeder

	log *zap.Logger
}

// New wires a Service over one storage. Repository options (logger, id
// generator) are applied to every repository.
func New(store storage.Storage, log *zap.Logger, opts ...repository.Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	opts = append([]repository.Option{repository.WithLogger(log)}, opts...)
	users := repository.NewUserRepository(store, opts...)
	return &Service{
		Users:     users,
		Patients:  repository.NewPatientRepository(store, opts...),
		Incidents: repository.NewIncidentRepository(store, opts...),
		Sessions:  auth.NewManager(users, store, log.Named("session")),
		Seeder:    seed.New(store, log.Named("seed")),
		log:       log,
	}
}

// EnsureSeeded populates absent collections. Call once at start.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	return s.Seeder.EnsureSeeded(ctx)
}

func (s *Service) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return s.Patients.List(ctx)
}

func (s *Service) AddPatient(ctx context.Context, in models.PatientInput) (*models.Patient, error) {
	p, err := s.Patients.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("add patient: %w", err)
	}
	s.log.Info("patient added", zap.String("patient_id", p.ID))
	return p, nil
}

// UpdatePatient returns nil, nil when id is unknown.
func (s *Service) UpdatePatient(ctx context.Context, id string, patch models.PatientPatch) (*models.Patient, error) {
	p, err := s.Patients.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update patient %s: %w", id, err)
	}
	if p == nil {
		s.log.Debug("update of unknown patient", zap.String("patient_id", id))
	}
	return p, nil
}

func (s *Service) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	return s.Incidents.List(ctx)
}

func (s *Service) AddIncident(ctx context.Context, in models.IncidentInput) (*models.Incident, error) {
	inc, err := s.Incidents.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("add incident: %w", err)
	}
	s.log.Info("incident added", zap.String("incident_id", inc.ID), zap.String("patient_id", inc.PatientID))
	return inc, nil
}

// UpdateIncident returns nil, nil when id is unknown.
func (s *Service) UpdateIncident(ctx context.Context, id string, patch models.IncidentPatch) (*models.Incident, error) {
	inc, err := s.Incidents.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update incident %s: %w", id, err)
	}
	if inc == nil {
		s.log.Debug("update of unknown incident", zap.String("incident_id", id))
	}
	return inc, nil
}

// Login returns nil, nil when the credentials do not match.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return s.Sessions.Authenticate(ctx, email, password)
}

func (s *Service) Logout(ctx context.Context) error {
	return s.Sessions.End(ctx)
}

func (s *Service) CurrentSession(ctx context.Context) (*models.Session, error) {
	return s.Sessions.Current(ctx)
}
