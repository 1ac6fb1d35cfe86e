package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/infrastructure/kv"
)

func newTestService() (Service, *kv.MemStore) {
	store := kv.NewMemStore()
	return NewService(ServiceDeps{Store: store}), store
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestService()

	acct, err := svc.Register(context.Background(), domain.CreateAccountRequest{
		Email:       "  Ann@X.com ",
		Password:    "Password1",
		DisplayName: "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", acct.Email)
	assert.Equal(t, "Ann", acct.DisplayName)
	assert.NotEqual(t, "Password1", acct.PasswordDigest)

	found, err := svc.Find(context.Background(), "ANN@x.COM")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", found.Email)
}

func TestRegisterDisplayNameDefaultsToEmail(t *testing.T) {
	svc, _ := newTestService()

	acct, err := svc.Register(context.Background(), domain.CreateAccountRequest{
		Email:    "bob@x.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", acct.DisplayName)
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), domain.CreateAccountRequest{Email: "   ", Password: "Password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Register(context.Background(), domain.CreateAccountRequest{Email: "a@x.com", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.CreateAccountRequest{Email: "Ann@X.com", Password: "Password2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	acct, err := svc.Authenticate(context.Background(), "ann@x.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", acct.Email)

	_, err = svc.Authenticate(context.Background(), "ann@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	_, err = svc.Authenticate(context.Background(), "nobody@x.com", "Password1")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(context.Background(), "ann@x.com", "Password2"))

	_, err = svc.Authenticate(context.Background(), "ann@x.com", "Password1")
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	_, err = svc.Authenticate(context.Background(), "ann@x.com", "Password2")
	assert.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), "nobody@x.com", "Password2")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestMalformedCollectionTreatedAsEmpty(t *testing.T) {
	svc, store := newTestService()
	store.Set("lms_users_v1", "{not json")

	_, err := svc.Find(context.Background(), "ann@x.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.Register(context.Background(), domain.CreateAccountRequest{Email: "ann@x.com", Password: "Password1"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "ann@x.com", "Password1")
	assert.NoError(t, err)
}
