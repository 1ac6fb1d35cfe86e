package account

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/infrastructure/kv"
	"github.com/go-lms-auth/internal/pkg/digest"
)

// usersKey is the persistent slot holding the whole account collection
// as a JSON array.
const usersKey = "lms_users_v1"

type Service interface {
	Find(ctx context.Context, email string) (*domain.Account, error)
	Register(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
}

type service struct {
	store kv.Store
}

type ServiceDeps struct {
	Store kv.Store
}

func NewService(deps ServiceDeps) Service {
	return &service{store: deps.Store}
}

func (s *service) Find(ctx context.Context, email string) (*domain.Account, error) {
	email = normalizeEmail(email)
	for _, a := range s.readAll() {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *service) Register(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = email
	}

	// The collection is read, checked and rewritten as a whole. Two
	// concurrent registrations can both pass the duplicate check and
	// the later write wins, dropping the earlier account.
	accounts := s.readAll()
	for _, a := range accounts {
		if a.Email == email {
			return nil, domain.ErrDuplicateAccount
		}
	}

	acct := domain.Account{
		Email:          email,
		DisplayName:    name,
		PasswordDigest: digest.Hex(req.Password),
	}
	s.writeAll(append(accounts, acct))
	return &acct, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	acct, err := s.Find(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct.PasswordDigest != digest.Hex(password) {
		return nil, domain.ErrIncorrectPassword
	}
	return acct, nil
}

func (s *service) UpdatePassword(ctx context.Context, email, newPassword string) error {
	email = normalizeEmail(email)
	accounts := s.readAll()
	for i := range accounts {
		if accounts[i].Email == email {
			accounts[i].PasswordDigest = digest.Hex(newPassword)
			s.writeAll(accounts)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// readAll loads the account collection. A missing or unreadable slot
// yields an empty collection rather than an error.
func (s *service) readAll() []domain.Account {
	raw, ok := s.store.Get(usersKey)
	if !ok {
		return nil
	}
	var accounts []domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		slog.Warn("account collection unreadable, treating as empty", "error", err)
		return nil
	}
	return accounts
}

func (s *service) writeAll(accounts []domain.Account) {
	raw, err := json.Marshal(accounts)
	if err != nil {
		slog.Warn("marshal account collection", "error", err)
		return
	}
	s.store.Set(usersKey, string(raw))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
