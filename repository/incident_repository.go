package repository

import (
	"context"

	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
)

// IncidentRepository persists incidents under KeyIncidents.
type IncidentRepository struct {
	incidents *collection[models.Incident]
	newID     IDGenerator
}

// NewIncidentRepository creates a new IncidentRepository.
func NewIncidentRepository(s storage.Storage, opts ...Option) *IncidentRepository {
	o := buildOptions(opts)
	return &IncidentRepository{
		incidents: newCollection[models.Incident](KeyIncidents, s, o.log),
		newID:     o.newID,
	}
}

// List returns all incidents in insertion order.
func (r *IncidentRepository) List(ctx context.Context) ([]models.Incident, error) {
	items, err := r.incidents.list(ctx)
	for i := range items {
		items[i] = items[i].Normalized()
	}
	return items, err
}

// GetByID fetches an incident by its ID. Returns nil, nil when absent.
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexIncident(items, id); i >= 0 {
		inc := items[i]
		return &inc, nil
	}
	return nil, nil
}

// ListByPatientID returns the incidents of one patient in insertion order.
func (r *IncidentRepository) ListByPatientID(ctx context.Context, patientID string) ([]models.Incident, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Incident, 0, len(items))
	for _, inc := range items {
		if inc.PatientID == patientID {
			out = append(out, inc)
		}
	}
	return out, nil
}

// Create appends a new incident with a freshly assigned ID.
// Status defaults to Scheduled if empty; cost is coerced to a finite value >= 0.
// PatientID is not checked against the patient collection.
func (r *IncidentRepository) Create(ctx context.Context, in models.IncidentInput) (*models.Incident, error) {
	var created models.Incident
	err := r.incidents.mutate(ctx, func(items []models.Incident) ([]models.Incident, bool, error) {
		id, err := freshID(r.newID, "i", func(id string) bool { return indexIncident(items, id) >= 0 })
		if err != nil {
			return nil, false, err
		}
		created = models.NewIncident(id, in)
		return append(items, created), true, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the incident with the given ID. A patch carrying Files
// replaces the stored list. Returns nil, nil and writes nothing when the ID is unknown.
func (r *IncidentRepository) Update(ctx context.Context, id string, patch models.IncidentPatch) (*models.Incident, error) {
	var updated *models.Incident
	err := r.incidents.mutate(ctx, func(items []models.Incident) ([]models.Incident, bool, error) {
		i := indexIncident(items, id)
		if i < 0 {
			return items, false, nil
		}
		patch.Apply(&items[i])
		items[i] = items[i].Normalized()
		inc := items[i]
		updated = &inc
		return items, true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func indexIncident(incidents []models.Incident, id string) int {
	for i := range incidents {
		if incidents[i].ID == id {
			return i
		}
	}
	return -1
}
