package clinic

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dentalClinicManagement/internal/auth"
	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/internal/testutil"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

// newSeededService returns a service over fresh storage with seed data applied.
func newSeededService(t *testing.T, s storage.Storage) *Service {
	t.Helper()
	svc := New(s, nil)
	if err := svc.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("ensure seeded: %v", err)
	}
	return svc
}

func TestSeededPatients(t *testing.T) {
	svc := newSeededService(t, testutil.OpenSQLiteStorage(t, "clinicseed"))
	patients, err := svc.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(patients) != 1 || patients[0].ID != "p1" || patients[0].Name != "John Doe" {
		t.Fatalf("unexpected seed patients: %+v", patients)
	}
}

func TestLogin(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()

	sess, err := svc.Login(ctx, "admin@entnt.in", "admin123")
	if err != nil || sess == nil || sess.Role != models.RoleAdmin {
		t.Fatalf("login admin: %v %+v", err, sess)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	sess, err = svc.Login(ctx, "admin@entnt.in", "wrong")
	if err != nil || sess != nil {
		t.Fatalf("wrong password: expected nil, nil; got %+v %v", sess, err)
	}
	if cur, _ := svc.CurrentSession(ctx); cur != nil {
		t.Fatalf("expected logged out, got %+v", cur)
	}
}

func TestAddIncident_CostFromForm(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()

	inc, err := svc.AddIncident(ctx, models.IncidentInput{
		PatientID:       "p1",
		Title:           "Cleaning",
		Cost:            models.ParseCost("45.5"),
		Status:          models.IncidentStatusScheduled,
		AppointmentDate: "2025-01-01T09:00:00",
	})
	if err != nil {
		t.Fatalf("add incident: %v", err)
	}
	incidents, err := svc.ListIncidents(ctx)
	if err != nil {
		t.Fatalf("list incidents: %v", err)
	}
	var found *models.Incident
	for i := range incidents {
		if incidents[i].ID == inc.ID {
			found = &incidents[i]
		}
	}
	if found == nil || found.Cost != 45.5 || found.ID == "i1" {
		t.Fatalf("incident not stored as expected: %+v", found)
	}
	if len(incidents) != 2 || incidents[0].ID != "i1" {
		t.Fatalf("new incident must be appended: %+v", incidents)
	}
}

func TestUpdatePatient_ChangesOnlyContact(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()

	before, _ := svc.ListPatients(ctx)
	contact := "9999999999"
	p, err := svc.UpdatePatient(ctx, "p1", models.PatientPatch{Contact: &contact})
	if err != nil || p == nil {
		t.Fatalf("update patient: %v %+v", err, p)
	}
	after, _ := svc.ListPatients(ctx)
	want := before[0]
	want.Contact = contact
	if diff := cmp.Diff([]models.Patient{want}, after); diff != "" {
		t.Fatalf("patients (-want +got):\n%s", diff)
	}
	if after[0].Name != "John Doe" || after[0].Dob != "1990-05-10" || after[0].HealthInfo != "No allergies" {
		t.Fatalf("untouched fields changed: %+v", after[0])
	}
}

func TestUpdateIncident_UnknownID(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()

	before, _ := svc.ListIncidents(ctx)
	completed := models.IncidentStatusCompleted
	inc, err := svc.UpdateIncident(ctx, "unknown-id", models.IncidentPatch{Status: &completed})
	if err != nil || inc != nil {
		t.Fatalf("expected nil, nil; got %+v %v", inc, err)
	}
	after, _ := svc.ListIncidents(ctx)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("incidents changed (-before +after):\n%s", diff)
	}
}

func TestAddPatient_UniqueIDs(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()

	seen := map[string]bool{"p1": true}
	for i := 0; i < 50; i++ {
		p, err := svc.AddPatient(ctx, models.PatientInput{Name: "Same Name", Email: "same@entnt.in"})
		if err != nil {
			t.Fatalf("add patient %d: %v", i, err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %q after %d adds", p.ID, i)
		}
		seen[p.ID] = true
	}
	patients, _ := svc.ListPatients(ctx)
	if len(patients) != 51 {
		t.Fatalf("expected 51 patients, got %d", len(patients))
	}
}

func TestDashboard(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()
	dates := []string{"2025-01-01T09:00:00", "2025-09-01T09:00:00", "2025-03-01T09:00:00", "2025-05-01T09:00:00", "2025-02-01T09:00:00", "2025-04-01T09:00:00"}
	for i, d := range dates {
		status := models.IncidentStatusScheduled
		if i == 0 {
			status = models.IncidentStatusCancelled
		}
		if _, err := svc.AddIncident(ctx, models.IncidentInput{PatientID: "p1", Title: "Visit", AppointmentDate: d, Cost: 10, Status: status}); err != nil {
			t.Fatalf("add incident: %v", err)
		}
	}

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	want := Stats{TotalPatients: 1, TotalIncidents: 7, CompletedIncidents: 1, ScheduledIncidents: 5, CancelledIncidents: 1, TotalRevenue: 140}
	if diff := cmp.Diff(want, dash.Stats); diff != "" {
		t.Fatalf("stats (-want +got):\n%s", diff)
	}
	if len(dash.Recent) != RecentLimit {
		t.Fatalf("recent: got %d", len(dash.Recent))
	}
	var got []string
	for _, inc := range dash.Recent {
		got = append(got, inc.AppointmentDate[:7])
	}
	if diff := cmp.Diff([]string{"2025-09", "2025-07", "2025-05", "2025-04", "2025-03"}, got); diff != "" {
		t.Fatalf("recent order (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()
	if _, err := svc.AddIncident(ctx, models.IncidentInput{PatientID: "p1", Title: "Whitening", Status: models.IncidentStatusScheduled}); err != nil {
		t.Fatalf("add incident: %v", err)
	}

	byName, err := svc.SearchIncidents(ctx, repository.IncidentFilter{Search: "john", Status: repository.StatusAll})
	if err != nil || len(byName) != 2 {
		t.Fatalf("search by patient name: %v %+v", err, byName)
	}
	scheduled, err := svc.SearchIncidents(ctx, repository.IncidentFilter{Search: "john", Status: "Scheduled"})
	if err != nil || len(scheduled) != 1 || scheduled[0].Title != "Whitening" {
		t.Fatalf("search with status: %v %+v", err, scheduled)
	}
	patients, err := svc.SearchPatients(ctx, repository.PatientFilter{Search: "1234"})
	if err != nil || len(patients) != 1 {
		t.Fatalf("search patients: %v %+v", err, patients)
	}
}

func TestPatientOverview(t *testing.T) {
	svc := newSeededService(t, storage.NewMemory())
	ctx := context.Background()
	if _, err := svc.AddIncident(ctx, models.IncidentInput{PatientID: "p1", Title: "Follow-up", AppointmentDate: "2025-08-01T10:00:00", Cost: 45.5}); err != nil {
		t.Fatalf("add incident: %v", err)
	}
	if _, err := svc.AddIncident(ctx, models.IncidentInput{PatientID: "p2", Title: "Other", AppointmentDate: "2025-09-01T10:00:00"}); err != nil {
		t.Fatalf("add incident: %v", err)
	}

	sess, err := svc.Login(ctx, "john@entnt.in", "patient123")
	if err != nil || sess == nil {
		t.Fatalf("login: %v", err)
	}
	ov, err := svc.PatientOverview(ctx, sess)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.Patient == nil || ov.Patient.ID != "p1" {
		t.Fatalf("patient: %+v", ov.Patient)
	}
	if len(ov.Incidents) != 2 || ov.Incidents[0].Title != "Follow-up" || ov.Incidents[1].ID != "i1" {
		t.Fatalf("incidents: %+v", ov.Incidents)
	}
	want := PatientSummary{TotalAppointments: 2, CompletedAppointments: 1, TotalSpent: 125.5}
	if diff := cmp.Diff(want, ov.Summary); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}

	admin, _ := svc.Login(ctx, "admin@entnt.in", "admin123")
	if _, err := svc.PatientOverview(ctx, admin); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("admin overview: %v", err)
	}
	if _, err := svc.PatientOverview(ctx, nil); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("anonymous overview: %v", err)
	}
}

func TestSearchIncidents_CorruptPatients(t *testing.T) {
	s := storage.NewMemory()
	svc := newSeededService(t, s)
	ctx := context.Background()
	_ = s.Set(ctx, repository.KeyPatients, []byte(`garbage`))

	got, err := svc.SearchIncidents(ctx, repository.IncidentFilter{Search: "tooth"})
	if err != nil || len(got) != 1 {
		t.Fatalf("search should fall back to incident fields: %v %+v", err, got)
	}
	if _, err := svc.ListPatients(ctx); !errors.Is(err, repository.ErrCorruptCollection) {
		t.Fatalf("list patients: %v", err)
	}
}
