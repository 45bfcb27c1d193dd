package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/repo"
	"github.com/ovaphlow/pitchfork/service-portfolio/pkg/utilities"
)

// UserStore is the slice of the credential table the auth service needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	CountByRole(ctx context.Context, role entity.Role) (int, error)
	Create(ctx context.Context, u *entity.AdminUser) (int64, error)
}

var (
	ErrMissingCredentials = errors.New("email and password required")
	// ErrBadCredentials covers both unknown email and wrong password so that
	// callers cannot tell which one failed.
	ErrBadCredentials = errors.New("invalid credentials")
)

// AuthService verifies admin credentials and mints session tokens.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenIssuer
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens *TokenIssuer) *AuthService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// LoginResult is returned to the admin client on a successful login.
type LoginResult struct {
	Token     string      `json:"token"`
	FullName  string      `json:"fullname"`
	Role      entity.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Login checks email/password against the credential table and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.hasher.Verify(dummyHashFor(s.hasher), password)
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("lookup credential: %w", err)
	}
	// rows carrying a role outside the closed set cannot sign in
	if !s.hasher.Verify(u.PasswordHash, password) || !u.Role.Valid() {
		return nil, ErrBadCredentials
	}
	token, exp, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, FullName: u.FullName, Role: u.Role, ExpiresAt: exp}, nil
}

// SeedAdmin describes the account created when no admin exists.
type SeedAdmin struct {
	Email    string
	FullName string
	// Password may be empty, in which case a random one is generated.
	Password string
}

// EnsureDefaultAdmin creates the seed admin if no admin credential exists.
// It is safe to call on every start. created reports whether a row was
// inserted; password is the plaintext used, for the operator to read once.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, seed SeedAdmin) (created bool, password string, err error) {
	n, err := s.users.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return false, "", fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, "", nil
	}
	password = seed.Password
	if password == "" {
		password = utilities.NewKSUID()
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, "", fmt.Errorf("hash seed password: %w", err)
	}
	u := &entity.AdminUser{
		Email:        seed.Email,
		PasswordHash: hash,
		FullName:     seed.FullName,
		Role:         entity.RoleAdmin,
	}
	if _, err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return false, "", fmt.Errorf("seed email %s is taken by a non-admin credential", seed.Email)
		}
		return false, "", fmt.Errorf("create seed admin: %w", err)
	}
	return true, password, nil
}
