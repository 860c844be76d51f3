package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
)

type mockAccountRepo struct {
	exists    bool
	existsErr error
	createErr error

	created        *account.Account
	createdStudent *account.StudentProfile
	createdCompany *account.CompanyProfile
}

func (m *mockAccountRepo) Create(_ context.Context, a account.Account, sp *account.StudentProfile, cp *account.CompanyProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = &a
	m.createdStudent = sp
	m.createdCompany = cp
	return nil
}

func (m *mockAccountRepo) GetByID(context.Context, uuid.UUID) (account.Account, error) {
	return account.Account{}, account.ErrNotFound
}
func (m *mockAccountRepo) GetByEmail(context.Context, string) (account.Account, error) {
	return account.Account{}, account.ErrNotFound
}
func (m *mockAccountRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return m.exists, m.existsErr
}
func (m *mockAccountRepo) List(context.Context) ([]account.Account, error) { return nil, nil }
func (m *mockAccountRepo) ListPendingCompanies(context.Context) ([]account.Account, error) {
	return nil, nil
}
func (m *mockAccountRepo) ConsumeVerificationCode(context.Context, uuid.UUID, string) error { return nil }
func (m *mockAccountRepo) SetAdminVerified(context.Context, uuid.UUID) error         { return nil }
func (m *mockAccountRepo) SetPasswordHash(context.Context, uuid.UUID, string) error  { return nil }
func (m *mockAccountRepo) SetBanExpiry(context.Context, uuid.UUID, *time.Time) error { return nil }
func (m *mockAccountRepo) Delete(context.Context, uuid.UUID) error                   { return nil }

type mockSender struct {
	sent chan struct{}
}

func (m mockSender) SendVerificationCode(string, string) error {
	if m.sent != nil {
		m.sent <- struct{}{}
	}
	return nil
}

func newTestService(repo *mockAccountRepo, sender CodeSender) *Service {
	return NewService(repo, sender, 3, zerolog.Nop())
}

func studentInput() RegisterInput {
	return RegisterInput{
		Role:      account.RoleStudent,
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "Jean.Dupont@etu.unistra.fr",
		Password:  "abc",
	}
}

func TestRegister_Student(t *testing.T) {
	repo := &mockAccountRepo{}
	sent := make(chan struct{}, 1)
	svc := newTestService(repo, mockSender{sent: sent})

	a, err := svc.Register(context.Background(), studentInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if a.Email != "jean.dupont@etu.unistra.fr" {
		t.Fatalf("expected normalized email, got %q", a.Email)
	}
	if a.PasswordHash != "" || a.VerificationCode != nil {
		t.Fatalf("returned account must not carry secrets")
	}
	if repo.created == nil || repo.createdStudent == nil {
		t.Fatalf("expected account and student profile to be created")
	}
	if repo.createdCompany != nil {
		t.Fatalf("student signup must not create a company profile")
	}
	if repo.created.VerificationCode == nil || len(*repo.created.VerificationCode) != 6 {
		t.Fatalf("expected a 6-digit verification code to be stored")
	}
	if repo.created.EmailVerified || !repo.created.AdminVerified {
		t.Fatalf("student starts unverified by email and approved by admin")
	}
	if repo.createdStudent.SearchType != account.DefaultSearchType {
		t.Fatalf("expected default search type, got %q", repo.createdStudent.SearchType)
	}

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatalf("expected verification code dispatch")
	}
}

func TestRegister_CompanyPendingApproval(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := newTestService(repo, mockSender{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Role:        account.RoleCompany,
		FirstName:   "Marie",
		LastName:    "Curie",
		Email:       "contact@acme.example",
		Password:    "abc",
		CompanyName: "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if repo.created.AdminVerified {
		t.Fatalf("company signup must wait for approval")
	}
	if repo.createdCompany == nil || repo.createdCompany.Name != "Acme" {
		t.Fatalf("expected company profile to be created")
	}
}

func TestRegister_CompanySkipsDomainCheck(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := newTestService(repo, mockSender{})

	in := studentInput()
	in.Role = account.RoleCompany
	in.Email = "hr@random-company.example"
	in.CompanyName = "Random"
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("company emails are unrestricted, got %v", err)
	}
}

func TestRegister_DomainNotAllowed(t *testing.T) {
	svc := newTestService(&mockAccountRepo{}, mockSender{})

	in := studentInput()
	in.Email = "jean@gmail.com"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrDomainNotAllowed) {
		t.Fatalf("expected ErrDomainNotAllowed, got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestService(&mockAccountRepo{}, mockSender{})

	in := studentInput()
	in.Password = "ab"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestService(&mockAccountRepo{}, mockSender{})

	in := studentInput()
	in.FirstName = "  "
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newTestService(&mockAccountRepo{exists: true}, mockSender{})

	if _, err := svc.Register(context.Background(), studentInput()); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestRegister_DuplicateRace(t *testing.T) {
	svc := newTestService(&mockAccountRepo{createErr: account.ErrDuplicateEmail}, mockSender{})

	if _, err := svc.Register(context.Background(), studentInput()); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}
