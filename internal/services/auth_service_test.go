package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

type stubAuthStore struct {
	users map[string]*models.UserProfile
}

func newStubAuthStore() *stubAuthStore {
	return &stubAuthStore{users: map[string]*models.UserProfile{}}
}

func (s *stubAuthStore) FindUserByEmail(email string) (*models.UserProfile, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubAuthStore) GetUser(id string) (*models.UserProfile, error) {
	return s.users[id], nil
}

func (s *stubAuthStore) AddUser(u *models.UserProfile) error {
	s.users[u.ID] = u
	return nil
}

func testSigner(uid string, role models.UserRole, ttl time.Duration) (string, error) {
	return fmt.Sprintf("token:%s:%s:%s", uid, role, ttl), nil
}

func TestRegisterAndLogin(t *testing.T) {
	store := newStubAuthStore()
	sessions := NewSessionRegistry(30 * time.Minute)
	svc := NewAuthService(store, sessions, testSigner)

	u, err := svc.Register("Caio Azeredo", "cazeredo@rj.senac.br", "s3nha-forte", models.RoleASGManager)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" || !strings.HasPrefix(u.ID, "u") {
		t.Fatalf("id = %s", u.ID)
	}
	if !u.Permissions.CanApprove || !u.Permissions.CanConfigure {
		t.Fatalf("manager permissions = %+v", u.Permissions)
	}
	if string(u.PassHash) == "s3nha-forte" {
		t.Fatal("password must be hashed")
	}

	if _, err := svc.Register("Outro", "CAZEREDO@rj.senac.br", "x", models.RoleAreaCoordinator); err == nil {
		t.Fatal("duplicate email must conflict")
	}

	res, err := svc.Login("cazeredo@rj.senac.br", "s3nha-forte")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.User.ID != u.ID {
		t.Fatalf("result = %+v", res)
	}
	if !sessions.Active(u.ID) {
		t.Fatal("login must start a session")
	}

	svc.Logout(u.ID)
	if sessions.Active(u.ID) {
		t.Fatal("logout must end the session")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newStubAuthStore()
	svc := NewAuthService(store, NewSessionRegistry(time.Minute), testSigner)
	if _, err := svc.Register("Ana", "ana@rj.senac.br", "segredo", models.RoleAreaCoordinator); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"ana@rj.senac.br", "errada"},
		{"ninguem@rj.senac.br", "segredo"},
	} {
		_, err := svc.Login(tc.email, tc.password)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorUnauthorized {
			t.Fatalf("login(%s) err = %v, want unauthorized", tc.email, err)
		}
	}

	if _, err := svc.Login("", ""); err == nil {
		t.Fatal("blank credentials must be invalid")
	}
}

func TestPermissionsForRole(t *testing.T) {
	cases := []struct {
		role models.UserRole
		want models.Permissions
	}{
		{models.RolePresident, models.Permissions{CanApprove: true, CanViewConsolidated: true}},
		{models.RoleExecutiveDirector, models.Permissions{CanViewConsolidated: true}},
		{models.RoleASGManager, models.Permissions{CanEdit: true, CanApprove: true, CanViewConsolidated: true, CanConfigure: true}},
		{models.RoleAreaCoordinator, models.Permissions{CanEdit: true}},
		{models.RoleInternalAuditor, models.Permissions{CanViewConsolidated: true}},
		{models.RoleExternalConsultant, models.Permissions{CanViewConsolidated: true}},
		{models.UserRole("UNKNOWN"), models.Permissions{}},
	}
	for _, tc := range cases {
		if got := PermissionsForRole(tc.role); got != tc.want {
			t.Errorf("PermissionsForRole(%s) = %+v, want %+v", tc.role, got, tc.want)
		}
	}
}
