package repository

import (
	"sort"
	"strings"
	"time"

	"dentalClinicManagement/models"
)

// StatusAll is the filter sentinel that matches every status.
const StatusAll = "all"

// IncidentFilter selects incidents by search term and status. Both predicates
// must hold. An empty Search matches everything, as does Status "" or StatusAll.
type IncidentFilter struct {
	Search string
	Status string
}

// Match reports whether inc satisfies the filter. patientName resolves the
// patient's display name for the search; it may be nil.
func (f IncidentFilter) Match(inc models.Incident, patientName func(id string) (string, bool)) bool {
	if f.Status != "" && f.Status != StatusAll && string(inc.Status) != f.Status {
		return false
	}
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	if containsFold(inc.Title, term) || containsFold(inc.Description, term) {
		return true
	}
	if patientName != nil {
		if name, ok := patientName(inc.PatientID); ok && containsFold(name, term) {
			return true
		}
	}
	return false
}

// FilterIncidents returns the matching incidents, preserving order. patients is
// used to match the search term against patient names.
func FilterIncidents(incidents []models.Incident, patients []models.Patient, f IncidentFilter) []models.Incident {
	names := make(map[string]string, len(patients))
	for _, p := range patients {
		if _, seen := names[p.ID]; !seen {
			names[p.ID] = p.Name
		}
	}
	lookup := func(id string) (string, bool) {
		n, ok := names[id]
		return n, ok
	}
	out := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if f.Match(inc, lookup) {
			out = append(out, inc)
		}
	}
	return out
}

var appointmentLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseAppointmentDate parses the date formats produced by the appointment form.
func ParseAppointmentDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range appointmentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByAppointmentDesc returns a copy of incidents ordered latest appointment
// first. Equal dates keep their collection order; unparsable dates go last.
func SortByAppointmentDesc(incidents []models.Incident) []models.Incident {
	type keyed struct {
		inc models.Incident
		at  time.Time
		ok  bool
	}
	ks := make([]keyed, len(incidents))
	for i, inc := range incidents {
		at, ok := ParseAppointmentDate(inc.AppointmentDate)
		ks[i] = keyed{inc: inc, at: at, ok: ok}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.After(b.at)
	})
	out := make([]models.Incident, len(ks))
	for i := range ks {
		out[i] = ks[i].inc
	}
	return out
}

// Recent returns at most n incidents, latest appointment first.
func Recent(incidents []models.Incident, n int) []models.Incident {
	sorted := SortByAppointmentDesc(incidents)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
