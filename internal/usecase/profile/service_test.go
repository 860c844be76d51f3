package profile

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
	accounts map[uuid.UUID]*account.Account
}

func newMockAccountRepo(accounts ...*account.Account) *mockAccountRepo {
	m := &mockAccountRepo{accounts: map[uuid.UUID]*account.Account{}}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountRepo) Create(context.Context, account.Account, *account.StudentProfile, *account.CompanyProfile) error {
	return nil
}
func (m *mockAccountRepo) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return *a, nil
}
func (m *mockAccountRepo) GetByEmail(context.Context, string) (account.Account, error) {
	return account.Account{}, account.ErrNotFound
}
func (m *mockAccountRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *mockAccountRepo) List(context.Context) ([]account.Account, error)     { return nil, nil }
func (m *mockAccountRepo) ListPendingCompanies(context.Context) ([]account.Account, error) {
	return nil, nil
}
func (m *mockAccountRepo) ConsumeVerificationCode(context.Context, uuid.UUID, string) error { return nil }
func (m *mockAccountRepo) SetAdminVerified(context.Context, uuid.UUID) error { return nil }
func (m *mockAccountRepo) SetPasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	a, ok := m.accounts[id]
	if !ok {
		return account.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}
func (m *mockAccountRepo) SetBanExpiry(context.Context, uuid.UUID, *time.Time) error { return nil }
func (m *mockAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.accounts[id]; !ok {
		return account.ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

type mockProfileRepo struct {
	students map[uuid.UUID]account.StudentProfile
}

func (m *mockProfileRepo) GetStudentProfile(_ context.Context, id uuid.UUID) (account.StudentProfile, error) {
	p, ok := m.students[id]
	if !ok {
		return account.StudentProfile{}, account.ErrNotFound
	}
	return p, nil
}
func (m *mockProfileRepo) UpsertStudentProfile(_ context.Context, p account.StudentProfile) (account.StudentProfile, error) {
	if m.students == nil {
		m.students = map[uuid.UUID]account.StudentProfile{}
	}
	m.students[p.AccountID] = p
	return p, nil
}
func (m *mockProfileRepo) GetCompanyProfile(context.Context, uuid.UUID) (account.CompanyProfile, error) {
	return account.CompanyProfile{}, account.ErrNotFound
}
func (m *mockProfileRepo) UpsertCompanyProfile(_ context.Context, p account.CompanyProfile) (account.CompanyProfile, error) {
	return p, nil
}

type mockSessionStore struct {
	deletedFor []uuid.UUID
}

func (m *mockSessionStore) Create(_ context.Context, accountID uuid.UUID) (session.Session, error) {
	return session.Session{ID: uuid.New(), AccountID: accountID}, nil
}
func (m *mockSessionStore) Get(context.Context, uuid.UUID) (session.Session, error) {
	return session.Session{}, session.ErrNotFound
}
func (m *mockSessionStore) Delete(context.Context, uuid.UUID) error { return nil }
func (m *mockSessionStore) DeleteForAccount(_ context.Context, accountID uuid.UUID) error {
	m.deletedFor = append(m.deletedFor, accountID)
	return nil
}

func student(t *testing.T, password string) *account.Account {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &account.Account{
		ID:           uuid.New(),
		Email:        "jean@etu.unistra.fr",
		PasswordHash: string(h),
		Role:         account.RoleStudent,
	}
}

func TestMe(t *testing.T) {
	a := student(t, "abc")
	profiles := &mockProfileRepo{students: map[uuid.UUID]account.StudentProfile{
		a.ID: {AccountID: a.ID, SearchType: account.DefaultSearchType},
	}}
	svc := NewService(newMockAccountRepo(a), profiles, &mockSessionStore{}, 3)

	me, err := svc.Me(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if me.Account.PasswordHash != "" {
		t.Fatalf("me must not carry the password hash")
	}
	if me.StudentProfile == nil || me.CompanyProfile != nil {
		t.Fatalf("expected only the student profile")
	}
}

func TestMe_Unknown(t *testing.T) {
	svc := NewService(newMockAccountRepo(), &mockProfileRepo{}, &mockSessionStore{}, 3)

	if _, err := svc.Me(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStudentProfile_CreatesOnFirstSave(t *testing.T) {
	a := student(t, "abc")
	profiles := &mockProfileRepo{}
	svc := NewService(newMockAccountRepo(a), profiles, &mockSessionStore{}, 3)

	bio := "Étudiant en informatique"
	updated, err := svc.UpdateStudentProfile(context.Background(), a.ID, StudentUpdate{
		SearchType:   "Alternance",
		SearchStatus: "En recherche",
		Bio:          &bio,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.SearchType != "Alternance" || updated.Bio == nil {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if _, ok := profiles.students[a.ID]; !ok {
		t.Fatalf("expected profile to be stored")
	}
}

func TestChangePassword(t *testing.T) {
	a := student(t, "abc")
	repo := newMockAccountRepo(a)
	svc := NewService(repo, &mockProfileRepo{}, &mockSessionStore{}, 3)

	oldHash := a.PasswordHash
	if err := svc.ChangePassword(context.Background(), a.ID, "abc", "def"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.PasswordHash == oldHash {
		t.Fatalf("expected the hash to change")
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("def")) != nil {
		t.Fatalf("new password must verify")
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	a := student(t, "abc")
	svc := NewService(newMockAccountRepo(a), &mockProfileRepo{}, &mockSessionStore{}, 3)

	if err := svc.ChangePassword(context.Background(), a.ID, "wrong", "def"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestChangePassword_TooShort(t *testing.T) {
	a := student(t, "abc")
	svc := NewService(newMockAccountRepo(a), &mockProfileRepo{}, &mockSessionStore{}, 3)

	if err := svc.ChangePassword(context.Background(), a.ID, "abc", "ab"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestDeleteMe_RevokesSessions(t *testing.T) {
	a := student(t, "abc")
	repo := newMockAccountRepo(a)
	sessions := &mockSessionStore{}
	svc := NewService(repo, &mockProfileRepo{}, sessions, 3)

	if err := svc.DeleteMe(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := repo.accounts[a.ID]; ok {
		t.Fatalf("expected account to be deleted")
	}
	if len(sessions.deletedFor) != 1 || sessions.deletedFor[0] != a.ID {
		t.Fatalf("expected sessions to be revoked")
	}
}
