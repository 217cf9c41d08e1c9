package attachments

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"dentalClinicManagement/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRead_PreservesInputOrder(t *testing.T) {
	fsys := fstest.MapFS{}
	var names []string
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("scans/file%02d.txt", i)
		fsys[name] = &fstest.MapFile{Data: []byte(strings.Repeat("x", 25-i))}
		names = append(names, name)
	}

	got, err := Read(context.Background(), fsys, names)
	require.NoError(t, err)
	require.Len(t, got, len(names))
	for i, a := range got {
		assert.Equal(t, fmt.Sprintf("file%02d.txt", i), a.Name)
		assert.Equal(t, DataURL(names[i], fsys[names[i]].Data), a.URL)
	}
}

func TestRead_FailureDiscardsBatch(t *testing.T) {
	fsys := fstest.MapFS{"a.png": &fstest.MapFile{Data: []byte("a")}}
	got, err := Read(context.Background(), fsys, []string{"a.png", "missing.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pdf")
	assert.Nil(t, got)
}

func TestRead_Empty(t *testing.T) {
	got, err := Read(context.Background(), fstest.MapFS{}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:application/pdf;base64,aGk=", DataURL("invoice.pdf", []byte("hi")))
	assert.Equal(t, "data:image/png;base64,aGk=", DataURL("xray.png", []byte("hi")))
	// Unknown extension falls back to sniffing.
	assert.Equal(t, "data:text/plain; charset=utf-8;base64,aGk=", DataURL("notes.zzz", []byte("hi")))
}

func TestAppendAndRemove(t *testing.T) {
	existing := []models.Attachment{{Name: "a"}, {Name: "b"}}
	all := Append(existing, []models.Attachment{{Name: "c"}})
	assert.Equal(t, []models.Attachment{{Name: "a"}, {Name: "b"}, {Name: "c"}}, all)
	assert.Len(t, existing, 2)

	assert.Equal(t, []models.Attachment{{Name: "a"}, {Name: "c"}}, Remove(all, 1))
	assert.Equal(t, all, Remove(all, 7))
	assert.Len(t, all, 3)
}
