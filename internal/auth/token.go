package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by every signed token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the claims' expiry has elapsed at now.
func (c Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// TokenService issues and verifies HS256-signed tokens. The signing key is
// process-wide and read-only after construction.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	parser     *jwt.Parser
}

func NewTokenService(secret []byte, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("token service: empty signing key")
	}
	return &TokenService{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
		// Expiry is deliberately not validated here: the refresh flow must be
		// able to tell "authentic but expired" from "forged". Callers check
		// Claims.Expired themselves.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccess signs a short-lived token for the given subject.
func (s *TokenService) IssueAccess(subject string) (string, error) {
	return s.Issue(subject, s.accessTTL)
}

// IssueRefresh signs a long-lived token for the given subject.
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.Issue(subject, s.refreshTTL)
}

// Issue signs a token embedding {subject, expiresAt = now + ttl}.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidInput)
	}
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and structural well-formedness and
// returns the embedded claims. It does NOT check expiry. A token without an
// expiry claim is invalid by construction.
func (s *TokenService) Verify(token string) (*Claims, error) {
	parsed, err := s.parser.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	rc, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || rc.Subject == "" || rc.ExpiresAt == nil {
		return nil, ErrUnauthorized
	}
	return &Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}, nil
}
