package reset

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/infrastructure/kv"
	"github.com/go-lms-auth/internal/pkg/code"
)

// resetKeyPrefix is prepended to the normalized account email to form
// the slot key of a pending reset request.
const resetKeyPrefix = "lms_reset_"

// DefaultCodeTTL is how long an issued code stays valid.
const DefaultCodeTTL = 15 * time.Minute

type Service interface {
	IssueCode(ctx context.Context, email string) (string, error)
	VerifyAndConsume(ctx context.Context, email, resetCode, newPassword string) error
}

type accountStore interface {
	Find(ctx context.Context, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	accounts accountStore
	store    kv.Store
	mailer   mailer
	ttl      time.Duration
	now      func() time.Time
}

type ServiceDeps struct {
	Accounts accountStore
	Store    kv.Store
	Mailer   mailer
	TTL      time.Duration    // defaults to DefaultCodeTTL
	Now      func() time.Time // defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.TTL
	if ttl == 0 {
		ttl = DefaultCodeTTL
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		accounts: deps.Accounts,
		store:    deps.Store,
		mailer:   deps.Mailer,
		ttl:      ttl,
		now:      now,
	}
}

// IssueCode creates a fresh reset code for the account, replacing any
// pending request for the same email, and mails it. The code is also
// returned so callers can surface it in environments without real
// email delivery.
func (s *service) IssueCode(ctx context.Context, email string) (string, error) {
	acct, err := s.accounts.Find(ctx, email)
	if err != nil {
		return "", err
	}

	c, err := code.New()
	if err != nil {
		return "", err
	}
	req := domain.ResetRequest{
		Code:      c,
		Email:     acct.Email,
		ExpiresAt: s.now().UnixMilli() + s.ttl.Milliseconds(),
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	s.store.Set(resetKeyPrefix+acct.Email, string(raw))

	body := "Your password reset code is " + c + ". It expires in " + s.ttl.String() + "."
	if err := s.mailer.SendEmail(acct.Email, "Password reset code", body); err != nil {
		slog.Warn("send reset code email", "email", acct.Email, "error", err)
	}
	return c, nil
}

// VerifyAndConsume checks the submitted code against the pending
// request and, when it matches, updates the password and removes the
// request. An expired request is removed on sight; a wrong code leaves
// it in place so remaining attempts still count.
func (s *service) VerifyAndConsume(ctx context.Context, email, resetCode, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}
	key := resetKeyPrefix + strings.ToLower(strings.TrimSpace(email))

	raw, ok := s.store.Get(key)
	if !ok {
		return domain.ErrNoResetRequest
	}
	var req domain.ResetRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		slog.Warn("reset request unreadable, treating as absent", "error", err)
		return domain.ErrNoResetRequest
	}

	if s.now().UnixMilli() > req.ExpiresAt {
		s.store.Delete(key)
		return domain.ErrResetCodeExpired
	}
	if strings.TrimSpace(resetCode) != req.Code {
		return domain.ErrInvalidResetCode
	}

	if err := s.accounts.UpdatePassword(ctx, req.Email, newPassword); err != nil {
		return err
	}
	s.store.Delete(key)
	return nil
}
