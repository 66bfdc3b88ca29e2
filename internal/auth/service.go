package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adminboard/adminboard/internal/domain/user"
)

// Result is returned by Register and Login: the identity (password hash is
// never marshalled) plus a fresh token pair.
type Result struct {
	User         *user.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// TokenPair is returned by Refresh; the refresh token is the caller's own,
// unchanged — this design does not rotate refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service orchestrates registration, login, refresh and identity lookups on
// top of the hasher, the token service and the identity repository. It holds
// no mutable state of its own; the repository's consistency (unique email) is
// the storage layer's job, enforced there by a unique index.
type Service struct {
	users  user.Repo
	hasher PasswordHasher
	tokens *TokenService
	now    func() time.Time
}

func NewService(users user.Repo, hasher PasswordHasher, tokens *TokenService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates a new identity and signs it in.
//
// The lookup-then-create sequence is not atomic; two concurrent registrations
// with the same email can both pass the pre-check. The UNIQUE(email) index is
// the authoritative arbiter: the losing insert comes back as user.ErrConflict
// and surfaces as ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, name, email, password string, roleID int64) (*Result, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	if roleID == 0 {
		roleID = user.DefaultRoleID
	}
	u := &user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       roleID,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrConflict) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Re-fetch to guard against write/read inconsistency in the store. A miss
	// here is an internal invariant violation, not a user-facing condition.
	stored, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("read back created user: %w", err)
	}
	if err := stored.Validate(); err != nil {
		return nil, fmt.Errorf("created user: %w", err)
	}

	return s.signIn(stored)
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.signIn(u)
}

// UserByID resolves an identity for a validated token subject.
func (s *Service) UserByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup id: %w", err)
	}
	return u, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is returned unchanged. An expired refresh token is rejected,
// even though its signature is authentic.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Expired(s.now()) {
		return nil, ErrTokenExpired
	}
	access, err := s.tokens.IssueAccess(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("issue access: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

func (s *Service) signIn(u *user.User) (*Result, error) {
	access, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh: %w", err)
	}
	return &Result{User: u, AccessToken: access, RefreshToken: refresh}, nil
}
