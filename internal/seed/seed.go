// Package seed bootstraps an empty store and upgrades data written by older versions.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

// CurrentSchemaVersion is the record layout this build writes.
// Stores without a version key predate versioning and count as version 0.
const CurrentSchemaVersion = 1

// migrations[v] upgrades a store from version v to v+1.
var migrations = []func(ctx context.Context, s *Seeder) error{
	0: normalizeCollections,
}

var errCorrupt = errors.New("stored data is unreadable")

// Seeder writes seed data and runs schema migrations.
type Seeder struct {
	store storage.Storage
	log   *zap.Logger
}

// New creates a Seeder. A nil logger disables logging.
func New(store storage.Storage, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{store: store, log: log}
}

// EnsureSeeded writes the seed records of every absent collection, leaving
// present ones untouched, then brings the store up to CurrentSchemaVersion.
// It is safe to call on every start.
func (s *Seeder) EnsureSeeded(ctx context.Context) error {
	seeds := []struct {
		key  string
		data any
	}{
		{repository.KeyUsers, seedUsers()},
		{repository.KeyPatients, seedPatients()},
		{repository.KeyIncidents, seedIncidents()},
	}
	for _, sd := range seeds {
		if err := s.seedKey(ctx, sd.key, sd.data); err != nil {
			return err
		}
	}
	return s.migrate(ctx)
}

func (s *Seeder) seedKey(ctx context.Context, key string, data any) error {
	stored, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("check %s: %w", key, err)
	}
	if ok && !isBlank(stored) {
		return nil
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode seed %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("seed %s: %w", key, err)
	}
	s.log.Info("seeded collection", zap.String("key", key))
	return nil
}

// isBlank reports whether a stored value carries no collection at all.
func isBlank(blob []byte) bool {
	v := strings.TrimSpace(string(blob))
	return v == "" || v == "null"
}

// SchemaVersion returns the stored schema version, 0 when absent or unreadable.
func (s *Seeder) SchemaVersion(ctx context.Context) (int, error) {
	blob, ok, err := s.store.Get(ctx, repository.KeySchemaVersion)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(blob)))
	if err != nil || v < 0 {
		s.log.Warn("unreadable schema version, assuming 0", zap.ByteString("value", blob))
		return 0, nil
	}
	return v, nil
}

func (s *Seeder) migrate(ctx context.Context) error {
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > CurrentSchemaVersion {
		s.log.Warn("store written by a newer version", zap.Int("version", version), zap.Int("supported", CurrentSchemaVersion))
		return nil
	}
	for ; version < CurrentSchemaVersion; version++ {
		if err := migrations[version](ctx, s); err != nil {
			if errors.Is(err, errCorrupt) {
				// Leave the version as is so the next start retries.
				s.log.Error("migration skipped", zap.Int("from", version), zap.Error(err))
				return nil
			}
			return fmt.Errorf("migrate from %d: %w", version, err)
		}
		if err := s.store.Set(ctx, repository.KeySchemaVersion, []byte(strconv.Itoa(version+1))); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
		s.log.Info("schema migrated", zap.Int("from", version), zap.Int("to", version+1))
	}
	return nil
}

// normalizeCollections rewrites every collection in canonical form: incident costs
// become finite non-negative numbers and missing file lists become empty lists.
func normalizeCollections(ctx context.Context, s *Seeder) error {
	if err := rewrite(ctx, s, repository.KeyUsers, func(u models.User) models.User { return u }); err != nil {
		return err
	}
	if err := rewrite(ctx, s, repository.KeyPatients, func(p models.Patient) models.Patient { return p }); err != nil {
		return err
	}
	return rewrite(ctx, s, repository.KeyIncidents, models.Incident.Normalized)
}

// rewrite decodes the collection under key, maps every record and stores the result.
// Absent keys are skipped.
func rewrite[T any](ctx context.Context, s *Seeder, key string, fn func(T) T) error {
	blob, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	var items []T
	if len(strings.TrimSpace(string(blob))) > 0 {
		if err := json.Unmarshal(blob, &items); err != nil {
			return fmt.Errorf("%w: %s: %v", errCorrupt, key, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	for i := range items {
		items[i] = fn(items[i])
	}
	out, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, out); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
