package testutil

import (
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dentalClinicManagement/internal/db"
	"dentalClinicManagement/internal/storage"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache keeps every pooled connection on the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenSQLiteStorage returns a Storage backed by a fresh in-memory database.
func OpenSQLiteStorage(t *testing.T, name string) *storage.SQLite {
	t.Helper()
	return storage.NewSQLite(OpenInMemoryDB(t, name))
}

// SequenceIDs returns a deterministic id generator: prefix + "-1", prefix + "-2", ...
// Counters are kept per prefix.
func SequenceIDs() func(prefix string) string {
	var mu sync.Mutex
	next := map[string]int{}
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		next[prefix]++
		return fmt.Sprintf("%s-%d", prefix, next[prefix])
	}
}

// ObservedLogger returns a debug-level logger whose entries can be inspected.
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
