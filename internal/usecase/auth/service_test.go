package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/session"
)

type mockAccountRepo struct {
	byEmail map[string]account.Account
	byID    map[uuid.UUID]account.Account
}

func (m *mockAccountRepo) Create(context.Context, account.Account, *account.StudentProfile, *account.CompanyProfile) error {
	return nil
}
func (m *mockAccountRepo) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}
func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}
func (m *mockAccountRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *mockAccountRepo) List(context.Context) ([]account.Account, error)     { return nil, nil }
func (m *mockAccountRepo) ListPendingCompanies(context.Context) ([]account.Account, error) {
	return nil, nil
}
func (m *mockAccountRepo) ConsumeVerificationCode(context.Context, uuid.UUID, string) error { return nil }
func (m *mockAccountRepo) SetAdminVerified(context.Context, uuid.UUID) error         { return nil }
func (m *mockAccountRepo) SetPasswordHash(context.Context, uuid.UUID, string) error  { return nil }
func (m *mockAccountRepo) SetBanExpiry(context.Context, uuid.UUID, *time.Time) error { return nil }
func (m *mockAccountRepo) Delete(context.Context, uuid.UUID) error                   { return nil }

type mockSessionStore struct {
	sessions map[uuid.UUID]session.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[uuid.UUID]session.Session{}}
}

func (m *mockSessionStore) Create(_ context.Context, accountID uuid.UUID) (session.Session, error) {
	s := session.Session{ID: uuid.New(), AccountID: accountID}
	m.sessions[s.ID] = s
	return s, nil
}
func (m *mockSessionStore) Get(_ context.Context, id uuid.UUID) (session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}
func (m *mockSessionStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.sessions, id)
	return nil
}
func (m *mockSessionStore) DeleteForAccount(_ context.Context, accountID uuid.UUID) error {
	for id, s := range m.sessions {
		if s.AccountID == accountID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func testAccount(t *testing.T) account.Account {
	return account.Account{
		ID:            uuid.New(),
		Email:         "jean@etu.unistra.fr",
		PasswordHash:  hash(t, "abc"),
		Role:          account.RoleStudent,
		EmailVerified: true,
		AdminVerified: true,
	}
}

func newTestService(accounts []account.Account) (*Service, *mockSessionStore) {
	repo := &mockAccountRepo{byEmail: map[string]account.Account{}, byID: map[uuid.UUID]account.Account{}}
	for _, a := range accounts {
		repo.byEmail[a.Email] = a
		repo.byID[a.ID] = a
	}
	store := newMockSessionStore()
	return NewService(repo, store), store
}

func TestLogin_Success(t *testing.T) {
	a := testAccount(t)
	svc, store := newTestService([]account.Account{a})

	got, sess, err := svc.Login(context.Background(), "  Jean@ETU.unistra.fr ", "abc")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("wrong account")
	}
	if got.PasswordHash != "" {
		t.Fatalf("login response must not carry the password hash")
	}
	if _, ok := store.sessions[sess.ID]; !ok {
		t.Fatalf("expected a session to be created")
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	a := testAccount(t)
	svc, _ := newTestService([]account.Account{a})

	_, _, errUnknown := svc.Login(context.Background(), "nobody@etu.unistra.fr", "abc")
	_, _, errWrong := svc.Login(context.Background(), a.Email, "wrong")

	if !errors.Is(errUnknown, ErrBadCredentials) || !errors.Is(errWrong, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for both, got %v / %v", errUnknown, errWrong)
	}
}

func TestLogin_GateOrder(t *testing.T) {
	// An account failing every gate at once reports the approval gate first.
	a := testAccount(t)
	a.AdminVerified = false
	a.EmailVerified = false
	until := time.Now().Add(time.Hour)
	a.BanExpiresAt = &until

	svc, _ := newTestService([]account.Account{a})
	if _, _, err := svc.Login(context.Background(), a.Email, "abc"); !errors.Is(err, ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}
}

func TestLogin_EmailNotVerified(t *testing.T) {
	a := testAccount(t)
	a.EmailVerified = false

	svc, _ := newTestService([]account.Account{a})
	if _, _, err := svc.Login(context.Background(), a.Email, "abc"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestLogin_Banned(t *testing.T) {
	a := testAccount(t)
	until := time.Now().Add(24 * time.Hour).UTC()
	a.BanExpiresAt = &until

	svc, _ := newTestService([]account.Account{a})
	_, _, err := svc.Login(context.Background(), a.Email, "abc")

	var banned *BannedError
	if !errors.As(err, &banned) {
		t.Fatalf("expected BannedError, got %v", err)
	}
	if !banned.Until.Equal(until) {
		t.Fatalf("expected expiry %v, got %v", until, banned.Until)
	}
}

func TestLogin_ExpiredBan(t *testing.T) {
	a := testAccount(t)
	until := time.Now().Add(-time.Minute)
	a.BanExpiresAt = &until

	svc, _ := newTestService([]account.Account{a})
	if _, _, err := svc.Login(context.Background(), a.Email, "abc"); err != nil {
		t.Fatalf("elapsed ban must not block login, got %v", err)
	}
}

func TestAuthorize_RefetchesAccount(t *testing.T) {
	a := testAccount(t)
	svc, store := newTestService([]account.Account{a})

	sess, err := store.Create(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := svc.Authorize(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("wrong account")
	}
}

func TestAuthorize_BanAppliesMidSession(t *testing.T) {
	a := testAccount(t)
	repo := &mockAccountRepo{byEmail: map[string]account.Account{a.Email: a}, byID: map[uuid.UUID]account.Account{a.ID: a}}
	store := newMockSessionStore()
	svc := NewService(repo, store)

	sess, _ := store.Create(context.Background(), a.ID)

	// The ban lands after the session was created.
	until := time.Now().Add(time.Hour)
	a.BanExpiresAt = &until
	repo.byID[a.ID] = a

	var banned *BannedError
	if _, err := svc.Authorize(context.Background(), sess.ID); !errors.As(err, &banned) {
		t.Fatalf("expected BannedError, got %v", err)
	}
}

func TestAuthorize_OrphanSessionReaped(t *testing.T) {
	svc, store := newTestService(nil)

	sess, _ := store.Create(context.Background(), uuid.New())
	if _, err := svc.Authorize(context.Background(), sess.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, ok := store.sessions[sess.ID]; ok {
		t.Fatalf("expected orphan session to be deleted")
	}
}

func TestAuthorize_UnknownSession(t *testing.T) {
	svc, _ := newTestService(nil)
	if _, err := svc.Authorize(context.Background(), uuid.New()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	svc, _ := newTestService(nil)
	if err := svc.Logout(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.Logout(context.Background(), uuid.Nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
