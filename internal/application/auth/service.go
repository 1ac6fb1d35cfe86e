// Package auth ties account, session and reset services together into
// the flows a client drives: sign up, sign in and out, gate pages, and
// recover a forgotten password.
package auth

import (
	"context"

	"github.com/go-lms-auth/internal/domain"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.Session, error)
	RequireAuth(ctx context.Context, currentPath, fallback string) (string, bool, error)
	TakeIntendedDestination(ctx context.Context) (string, bool)
	SendResetCode(ctx context.Context, email string) (string, error)
	VerifyAndReset(ctx context.Context, req domain.ResetConfirmRequest) error
}

type accountService interface {
	Register(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
}

type sessionService interface {
	Issue(ctx context.Context, acct *domain.Account, remember bool) (*domain.Session, error)
	Current(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
	RequireAuthenticated(ctx context.Context, currentPath string) (bool, error)
	TakeIntendedDestination(ctx context.Context) (string, bool)
}

type resetService interface {
	IssueCode(ctx context.Context, email string) (string, error)
	VerifyAndConsume(ctx context.Context, email, resetCode, newPassword string) error
}

type service struct {
	accounts accountService
	sessions sessionService
	reset    resetService
}

type ServiceDeps struct {
	Accounts accountService
	Sessions sessionService
	Reset    resetService
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.Accounts,
		sessions: deps.Sessions,
		reset:    deps.Reset,
	}
}

func (s *service) Register(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	return s.accounts.Register(ctx, req)
}

// Login authenticates the credentials and issues a session. The
// remember flag picks the session tier.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	acct, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.sessions.Issue(ctx, acct, req.Remember)
}

func (s *service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// CurrentUser returns the active session or nil when anonymous.
func (s *service) CurrentUser(ctx context.Context) (*domain.Session, error) {
	return s.sessions.Current(ctx)
}

// RequireAuth gates a page. Authenticated visitors pass; anonymous ones
// get fallback as the redirect target, with currentPath recorded so a
// later login can resume there.
func (s *service) RequireAuth(ctx context.Context, currentPath, fallback string) (string, bool, error) {
	ok, err := s.sessions.RequireAuthenticated(ctx, currentPath)
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}
	return fallback, false, nil
}

func (s *service) TakeIntendedDestination(ctx context.Context) (string, bool) {
	return s.sessions.TakeIntendedDestination(ctx)
}

func (s *service) SendResetCode(ctx context.Context, email string) (string, error) {
	return s.reset.IssueCode(ctx, email)
}

func (s *service) VerifyAndReset(ctx context.Context, req domain.ResetConfirmRequest) error {
	return s.reset.VerifyAndConsume(ctx, req.Email, req.Code, req.NewPassword)
}
