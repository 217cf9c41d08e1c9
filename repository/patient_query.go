package repository

import (
	"strings"

	"dentalClinicManagement/models"
)

// PatientFilter selects patients by a case-insensitive search term.
// An empty Search matches every patient.
type PatientFilter struct {
	Search string
}

// Match reports whether the patient's name, email or contact contains the term.
func (f PatientFilter) Match(p models.Patient) bool {
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	return containsFold(p.Name, term) || containsFold(p.Email, term) || containsFold(p.Contact, term)
}

// FilterPatients returns the matching patients, preserving order.
func FilterPatients(patients []models.Patient, f PatientFilter) []models.Patient {
	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// containsFold reports whether s contains the already lowercased term.
func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
