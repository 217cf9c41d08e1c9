package seed

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/internal/testutil"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

func snapshot(t *testing.T, m *storage.Memory) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, k := range m.Keys() {
		v, _, err := m.Get(context.Background(), k)
		require.NoError(t, err)
		out[k] = string(v)
	}
	return out
}

func TestEnsureSeeded_EmptyStore(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, New(m, nil).EnsureSeeded(ctx))

	patients, err := repository.NewPatientRepository(m).List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p1", patients[0].ID)
	assert.Equal(t, "John Doe", patients[0].Name)

	users, err := repository.NewUserRepository(m).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "p1", users[1].PatientID)

	incidents, err := repository.NewIncidentRepository(m).List(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "i1", incidents[0].ID)
	assert.Equal(t, models.Cost(80), incidents[0].Cost)
	assert.Len(t, incidents[0].Files, 2)

	v, err := New(m, nil).SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)
}

func TestEnsureSeeded_Idempotent(t *testing.T) {
	once := storage.NewMemory()
	twice := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, New(once, nil).EnsureSeeded(ctx))
	require.NoError(t, New(twice, nil).EnsureSeeded(ctx))
	require.NoError(t, New(twice, nil).EnsureSeeded(ctx))

	assert.Equal(t, snapshot(t, once), snapshot(t, twice))
}

func TestEnsureSeeded_KeepsUserData(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, New(m, nil).EnsureSeeded(ctx))

	patients := repository.NewPatientRepository(m)
	_, err := patients.Create(ctx, models.PatientInput{Name: "Jane Roe"})
	require.NoError(t, err)
	contact := "9999999999"
	_, err = patients.Update(ctx, "p1", models.PatientPatch{Contact: &contact})
	require.NoError(t, err)

	require.NoError(t, New(m, nil).EnsureSeeded(ctx))

	list, err := patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "9999999999", list[0].Contact)
	assert.Equal(t, "Jane Roe", list[1].Name)
}

func TestEnsureSeeded_EmptyCollectionIsNotReseeded(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, repository.KeyIncidents, []byte(`[]`)))
	require.NoError(t, New(m, nil).EnsureSeeded(ctx))

	incidents, err := repository.NewIncidentRepository(m).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestEnsureSeeded_BlankCollectionIsSeeded(t *testing.T) {
	for _, blob := range []string{"", "  ", "null"} {
		m := storage.NewMemory()
		ctx := context.Background()
		require.NoError(t, m.Set(ctx, repository.KeyPatients, []byte(blob)))
		require.NoError(t, New(m, nil).EnsureSeeded(ctx))

		patients, err := repository.NewPatientRepository(m).List(ctx)
		require.NoError(t, err, "blob %q", blob)
		require.Len(t, patients, 1, "blob %q", blob)
		assert.Equal(t, "p1", patients[0].ID)
	}
}

func TestEnsureSeeded_MigratesLegacyData(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	legacy := `[{"id":"i7","patientId":"p1","title":"Crown","description":"","appointmentDate":"2024-01-01T10:00:00","cost":"120.5","status":"Completed"},` +
		`{"id":"i8","patientId":"p1","title":"Bad","description":"","appointmentDate":"2024-01-02T10:00:00","cost":"n/a","status":"Cancelled","files":null}]`
	require.NoError(t, m.Set(ctx, repository.KeyIncidents, []byte(legacy)))

	require.NoError(t, New(m, nil).EnsureSeeded(ctx))

	blob, _, err := m.Get(ctx, repository.KeyIncidents)
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(blob, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, 120.5, raw[0]["cost"])
	assert.Equal(t, float64(0), raw[1]["cost"])
	assert.Equal(t, []any{}, raw[0]["files"])
	assert.Equal(t, []any{}, raw[1]["files"])

	v, err := New(m, nil).SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestEnsureSeeded_CorruptCollectionDoesNotFail(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, repository.KeyPatients, []byte(`{oops`)))
	log, logs := testutil.ObservedLogger()

	require.NoError(t, New(m, log).EnsureSeeded(ctx))

	blob, _, _ := m.Get(ctx, repository.KeyPatients)
	assert.Equal(t, `{oops`, string(blob), "corrupt blob must be left in place")
	v, err := New(m, nil).SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v, "version must not advance past a failed migration")
	assert.Equal(t, 1, logs.FilterMessage("migration skipped").Len())
}

func TestSchemaVersion_Unreadable(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, repository.KeySchemaVersion, []byte("v2")))
	v, err := New(m, nil).SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
