package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

type AuthStore interface {
	FindUserByEmail(email string) (*models.UserProfile, error)
	GetUser(id string) (*models.UserProfile, error)
	AddUser(u *models.UserProfile) error
}

type TokenSigner func(uid string, role models.UserRole, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	sessions  *SessionRegistry
	idGen     func(prefix string, n int) string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token string
	User  *models.UserProfile
}

func NewAuthService(store AuthStore, sessions *SessionRegistry, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		sessions:  sessions,
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
		tokenTTL:  12 * time.Hour,
	}
}

// PermissionsForRole maps a role to its capability set. Approval rights stay
// with the ASG manager and the presidency; configuration with the manager.
func PermissionsForRole(role models.UserRole) models.Permissions {
	switch role {
	case models.RolePresident:
		return models.Permissions{CanEdit: false, CanApprove: true, CanViewConsolidated: true, CanConfigure: false}
	case models.RoleExecutiveDirector:
		return models.Permissions{CanEdit: false, CanApprove: false, CanViewConsolidated: true, CanConfigure: false}
	case models.RoleASGManager:
		return models.Permissions{CanEdit: true, CanApprove: true, CanViewConsolidated: true, CanConfigure: true}
	case models.RoleAreaCoordinator:
		return models.Permissions{CanEdit: true, CanApprove: false, CanViewConsolidated: false, CanConfigure: false}
	case models.RoleInternalAuditor:
		return models.Permissions{CanEdit: false, CanApprove: false, CanViewConsolidated: true, CanConfigure: false}
	case models.RoleExternalConsultant:
		return models.Permissions{CanEdit: false, CanApprove: false, CanViewConsolidated: true, CanConfigure: false}
	default:
		return models.Permissions{}
	}
}

func (s *AuthService) Register(name, email, password string, role models.UserRole) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.UserProfile{
		ID:          s.idGen("u", 7),
		Name:        strings.TrimSpace(name),
		Email:       email,
		Role:        role,
		Permissions: PermissionsForRole(role),
		PassHash:    hash,
	}
	if err := s.store.AddUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	if s.sessions != nil {
		s.sessions.Start(u.ID)
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *AuthService) Logout(uid string) {
	if s.sessions != nil {
		s.sessions.End(uid)
	}
}

func (s *AuthService) Profile(uid string) (*models.UserProfile, error) {
	u, err := s.store.GetUser(uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewNotFoundError("user not found")
	}
	return u, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
