package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/infrastructure/kv"
)

const (
	// sessionKey is the slot holding the active session record. The same
	// key is used in both tiers; the remember flag decides which one.
	sessionKey = "lms_session_v1"

	// intendedKey holds the path an anonymous visitor tried to reach,
	// consumed by the next successful login.
	intendedKey = "lms_intended"
)

type Service interface {
	Issue(ctx context.Context, acct *domain.Account, remember bool) (*domain.Session, error)
	Current(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
	RequireAuthenticated(ctx context.Context, currentPath string) (bool, error)
	TakeIntendedDestination(ctx context.Context) (string, bool)
}

type service struct {
	persistent kv.Store
	tabScoped  kv.Store
	now        func() time.Time
}

type ServiceDeps struct {
	Persistent kv.Store
	TabScoped  kv.Store
	Now        func() time.Time // defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		persistent: deps.Persistent,
		tabScoped:  deps.TabScoped,
		now:        now,
	}
}

// Issue records a fresh session in exactly one tier. With remember the
// record goes to the persistent tier and survives restarts; without it
// the record stays in the tab-scoped tier and dies with the context.
func (s *service) Issue(ctx context.Context, acct *domain.Account, remember bool) (*domain.Session, error) {
	sess := &domain.Session{
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
		CreatedAt:   s.now().UTC(),
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if remember {
		s.persistent.Set(sessionKey, string(raw))
	} else {
		s.tabScoped.Set(sessionKey, string(raw))
	}
	return sess, nil
}

// Current returns the active session or nil when anonymous. The
// tab-scoped tier takes precedence over the persistent one. An
// unreadable record counts as anonymous.
func (s *service) Current(ctx context.Context) (*domain.Session, error) {
	raw, ok := s.tabScoped.Get(sessionKey)
	if !ok {
		raw, ok = s.persistent.Get(sessionKey)
	}
	if !ok {
		return nil, nil
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		slog.Warn("session record unreadable, treating as anonymous", "error", err)
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the session from both tiers. Safe to call when
// anonymous.
func (s *service) Clear(ctx context.Context) error {
	s.tabScoped.Delete(sessionKey)
	s.persistent.Delete(sessionKey)
	return nil
}

// RequireAuthenticated reports whether a session is active. When
// anonymous it records currentPath as the intended destination so the
// next login can resume there.
func (s *service) RequireAuthenticated(ctx context.Context, currentPath string) (bool, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	if sess != nil {
		return true, nil
	}
	s.persistent.Set(intendedKey, currentPath)
	return false, nil
}

// TakeIntendedDestination returns the recorded destination and removes
// it, so each marker redirects at most one login.
func (s *service) TakeIntendedDestination(ctx context.Context) (string, bool) {
	dest, ok := s.persistent.Get(intendedKey)
	if !ok {
		return "", false
	}
	s.persistent.Delete(intendedKey)
	return dest, true
}
