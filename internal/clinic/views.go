package clinic

import (
	"context"
	"errors"
	"fmt"

	"dentalClinicManagement/internal/auth"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

// Stats are the dashboard totals.
type Stats struct {
	TotalPatients      int     `json:"totalPatients"`
	TotalIncidents     int     `json:"totalIncidents"`
	CompletedIncidents int     `json:"completedIncidents"`
	ScheduledIncidents int     `json:"scheduledIncidents"`
	CancelledIncidents int     `json:"cancelledIncidents"`
	TotalRevenue       float64 `json:"totalRevenue"`
}

// Dashboard is the admin overview.
type Dashboard struct {
	Stats  Stats             `json:"stats"`
	Recent []models.Incident `json:"recentIncidents"`
}

// PatientOverview is what a patient sees about themselves.
type PatientOverview struct {
	Patient   *models.Patient   `json:"patient"`
	Summary   PatientSummary    `json:"summary"`
	Incidents []models.Incident `json:"incidents"`
}

// PatientSummary totals one patient's appointments.
type PatientSummary struct {
	TotalAppointments     int     `json:"totalAppointments"`
	CompletedAppointments int     `json:"completedAppointments"`
	TotalSpent            float64 `json:"totalSpent"`
}

// SummarizePatient counts appointments and sums their cost regardless of status.
func SummarizePatient(incidents []models.Incident) PatientSummary {
	st := ComputeStats(nil, incidents)
	return PatientSummary{
		TotalAppointments:     st.TotalIncidents,
		CompletedAppointments: st.CompletedIncidents,
		TotalSpent:            st.TotalRevenue,
	}
}

// ComputeStats totals incidents by status. Revenue sums the cost of every
// incident regardless of status.
func ComputeStats(patients []models.Patient, incidents []models.Incident) Stats {
	st := Stats{TotalPatients: len(patients), TotalIncidents: len(incidents)}
	for _, inc := range incidents {
		switch inc.Status {
		case models.IncidentStatusCompleted:
			st.CompletedIncidents++
		case models.IncidentStatusScheduled:
			st.ScheduledIncidents++
		case models.IncidentStatusCancelled:
			st.CancelledIncidents++
		}
		st.TotalRevenue += float64(inc.Cost)
	}
	return st
}

// Dashboard returns totals and the most recent incidents.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	patients, err := s.Patients.List(ctx)
	if err != nil {
		return nil, err
	}
	incidents, err := s.Incidents.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Stats:  ComputeStats(patients, incidents),
		Recent: repository.Recent(incidents, RecentLimit),
	}, nil
}

// SearchPatients lists patients matching f.
func (s *Service) SearchPatients(ctx context.Context, f repository.PatientFilter) ([]models.Patient, error) {
	patients, err := s.Patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return repository.FilterPatients(patients, f), nil
}

// SearchIncidents lists incidents matching f. The patient collection backs the
// name search; if it is unreadable the search falls back to incident fields only.
func (s *Service) SearchIncidents(ctx context.Context, f repository.IncidentFilter) ([]models.Incident, error) {
	incidents, err := s.Incidents.List(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.Patients.List(ctx)
	if err != nil && !errors.Is(err, repository.ErrCorruptCollection) {
		return nil, err
	}
	return repository.FilterIncidents(incidents, patients, f), nil
}

// PatientOverview returns the session's patient record and its incidents,
// latest appointment first.
func (s *Service) PatientOverview(ctx context.Context, sess *models.Session) (*PatientOverview, error) {
	sess, err := auth.RequireSession(sess)
	if err != nil {
		return nil, err
	}
	if sess.PatientID == "" {
		return nil, fmt.Errorf("session %s has no patient record: %w", sess.ID, auth.ErrForbidden)
	}
	p, err := s.Patients.GetByID(ctx, sess.PatientID)
	if err != nil {
		return nil, err
	}
	incidents, err := s.Incidents.ListByPatientID(ctx, sess.PatientID)
	if err != nil {
		return nil, err
	}
	return &PatientOverview{
		Patient:   p,
		Summary:   SummarizePatient(incidents),
		Incidents: repository.SortByAppointmentDesc(incidents),
	}, nil
}
