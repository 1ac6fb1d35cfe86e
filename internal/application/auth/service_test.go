package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lms-auth/internal/application/account"
	"github.com/go-lms-auth/internal/application/reset"
	"github.com/go-lms-auth/internal/application/session"
	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/infrastructure/kv"
)

type nopMailer struct{}

func (nopMailer) SendEmail(to, subject, body string) error { return nil }

type fixture struct {
	svc        Service
	persistent *kv.MemStore
	tabScoped  *kv.MemStore
	now        time.Time
}

// newFixture wires the real services over in-memory stores, the way
// the demo binary wires them over a file store.
func newFixture() *fixture {
	f := &fixture{
		persistent: kv.NewMemStore(),
		tabScoped:  kv.NewMemStore(),
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	accounts := account.NewService(account.ServiceDeps{Store: f.persistent})
	sessions := session.NewService(session.ServiceDeps{
		Persistent: f.persistent,
		TabScoped:  f.tabScoped,
		Now:        func() time.Time { return f.now },
	})
	resets := reset.NewService(reset.ServiceDeps{
		Accounts: accounts,
		Store:    f.persistent,
		Mailer:   nopMailer{},
		Now:      func() time.Time { return f.now },
	})
	f.svc = NewService(ServiceDeps{Accounts: accounts, Sessions: sessions, Reset: resets})
	return f
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	acct, err := f.svc.Register(ctx, domain.CreateAccountRequest{
		Email:       "Ann@X.com",
		Password:    "Password1",
		DisplayName: "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", acct.Email)

	sess, err := f.svc.Login(ctx, domain.LoginRequest{
		Email:    "ann@x.com",
		Password: "Password1",
		Remember: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", sess.Email)
	assert.Equal(t, "Ann", sess.DisplayName)

	current, err := f.svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "ann@x.com", current.Email)

	// remember=false keeps the record out of the persistent tier
	_, ok := f.persistent.Get("lms_session_v1")
	assert.False(t, ok)

	require.NoError(t, f.svc.Logout(ctx))

	current, err = f.svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Login(ctx, domain.LoginRequest{Email: "", Password: "Password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ann@x.com", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ann@x.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)
}

func TestRequireAuthRedirectsAndResumes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	redirect, ok, err := f.svc.RequireAuth(ctx, "/dashboard.html", "/login.html")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "/login.html", redirect)

	_, err = f.svc.Register(ctx, domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	dest, found := f.svc.TakeIntendedDestination(ctx)
	require.True(t, found)
	assert.Equal(t, "/dashboard.html", dest)

	_, found = f.svc.TakeIntendedDestination(ctx)
	assert.False(t, found)

	redirect, ok, err = f.svc.RequireAuth(ctx, "/dashboard.html", "/login.html")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, redirect)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	c, err := f.svc.SendResetCode(ctx, "Ann@X.com")
	require.NoError(t, err)
	require.Len(t, c, 6)

	err = f.svc.VerifyAndReset(ctx, domain.ResetConfirmRequest{
		Email:       "ann@x.com",
		Code:        "000000",
		NewPassword: "Password2",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)

	err = f.svc.VerifyAndReset(ctx, domain.ResetConfirmRequest{
		Email:       "ann@x.com",
		Code:        c,
		NewPassword: "Password2",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ann@x.com", Password: "Password1"})
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ann@x.com", Password: "Password2"})
	require.NoError(t, err)

	err = f.svc.VerifyAndReset(ctx, domain.ResetConfirmRequest{
		Email:       "ann@x.com",
		Code:        c,
		NewPassword: "Password3",
	})
	assert.ErrorIs(t, err, domain.ErrNoResetRequest)
}

func TestResetCodeExpiry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	c, err := f.svc.SendResetCode(ctx, "ann@x.com")
	require.NoError(t, err)

	f.now = f.now.Add(16 * time.Minute)

	err = f.svc.VerifyAndReset(ctx, domain.ResetConfirmRequest{
		Email:       "ann@x.com",
		Code:        c,
		NewPassword: "Password2",
	})
	assert.ErrorIs(t, err, domain.ErrResetCodeExpired)

	err = f.svc.VerifyAndReset(ctx, domain.ResetConfirmRequest{
		Email:       "ann@x.com",
		Code:        c,
		NewPassword: "Password2",
	})
	assert.ErrorIs(t, err, domain.ErrNoResetRequest)
}
