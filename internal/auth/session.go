package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"dentalClinicManagement/internal/storage"
	"dentalClinicManagement/models"
	"dentalClinicManagement/repository"
)

// CredentialStore looks up users by their login credentials.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
}

// Manager keeps the single active session in storage under repository.KeySession.
//
// Credentials are compared in plain text, exactly as stored.
type Manager struct {
	users CredentialStore
	store storage.Storage
	log   *zap.Logger
}

// NewManager creates a session manager. A nil logger disables logging.
func NewManager(users CredentialStore, store storage.Storage, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{users: users, store: store, log: log}
}

// Authenticate starts a session for the user matching email and password.
// On a mismatch it returns nil, nil and leaves any persisted session untouched.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	u, err := m.users.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if u == nil {
		m.log.Info("login rejected", zap.String("email", email))
		return nil, nil
	}
	s := u.Session()
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, repository.KeySession, blob); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.log.Info("login", zap.String("user_id", s.ID), zap.String("role", string(s.Role)))
	return &s, nil
}

// Current returns the persisted session, or nil when there is none or it cannot be parsed.
func (m *Manager) Current(ctx context.Context) (*models.Session, error) {
	blob, ok, err := m.store.Get(ctx, repository.KeySession)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var s models.Session
	if err := json.Unmarshal(blob, &s); err != nil || s.ID == "" {
		m.log.Warn("ignoring unreadable session", zap.Int("bytes", len(blob)), zap.Error(err))
		return nil, nil
	}
	return &s, nil
}

// End removes the persisted session. Calling it while logged out is a no-op.
func (m *Manager) End(ctx context.Context) error {
	if err := m.store.Remove(ctx, repository.KeySession); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	m.log.Debug("session ended")
	return nil
}
