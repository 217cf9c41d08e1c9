package auth

import (
	"errors"

	"dentalClinicManagement/models"
)

var (
	// ErrUnauthenticated means no session is active.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden means the session's role may not perform the action.
	ErrForbidden = errors.New("permission denied")
)

// RequireSession ensures a session is present.
func RequireSession(s *models.Session) (*models.Session, error) {
	if s == nil || s.ID == "" {
		return nil, ErrUnauthenticated
	}
	return s, nil
}

// RequireAdmin ensures the caller is clinic staff.
func RequireAdmin(s *models.Session) (*models.Session, error) {
	s, err := RequireSession(s)
	if err != nil {
		return nil, err
	}
	if s.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s, nil
}

// RequirePatientAccess allows admins, and patients reading their own record.
func RequirePatientAccess(s *models.Session, patientID string) (*models.Session, error) {
	s, err := RequireSession(s)
	if err != nil {
		return nil, err
	}
	if s.Role == models.RoleAdmin {
		return s, nil
	}
	if s.Role == models.RolePatient && s.PatientID != "" && s.PatientID == patientID {
		return s, nil
	}
	return nil, ErrForbidden
}
