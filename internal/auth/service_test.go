package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminboard/adminboard/internal/auth"
	"github.com/adminboard/adminboard/internal/domain/user"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User

	conflictOnCreate bool
	dropAfterCreate  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*user.User{},
		byID:    map[string]*user.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if f.conflictOnCreate {
		return user.ErrConflict
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrConflict
	}
	cp := *u
	if f.dropAfterCreate {
		return nil
	}
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func newService(t *testing.T, repo user.Repo) (*auth.Service, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte("test-secret-key"), 15*time.Minute, 24000*time.Hour)
	require.NoError(t, err)
	return auth.NewService(repo, auth.NewBcryptHasher(4), tokens), tokens
}

func TestService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tokens := newService(t, repo)

	res, err := svc.Register(context.Background(), "Alice", "A@X.com", "pw1234", 0)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", res.User.Email) // normalized
	assert.Equal(t, int64(user.DefaultRoleID), res.User.RoleID)
	assert.NotEmpty(t, res.User.ID)
	assert.NotEqual(t, "pw1234", res.User.PasswordHash)

	for _, tok := range []string{res.AccessToken, res.RefreshToken} {
		claims, err := tokens.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.Subject)
	}
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(t, repo)

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Bob", "a@x.com", "other", 0)
	require.ErrorIs(t, err, auth.ErrAlreadyExists)
}

func TestService_RegisterConstraintRace(t *testing.T) {
	// Two concurrent registrations can both pass the pre-check; the storage
	// unique index is the authoritative arbiter and its conflict must still
	// surface as AlreadyExists.
	repo := newFakeUserRepo()
	repo.conflictOnCreate = true
	svc, _ := newService(t, repo)

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.ErrorIs(t, err, auth.ErrAlreadyExists)
}

func TestService_RegisterMissingFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(t, repo)

	_, err := svc.Register(context.Background(), "", "a@x.com", "pw1234", 0)
	require.ErrorIs(t, err, auth.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "Alice", "", "pw1234", 0)
	require.ErrorIs(t, err, auth.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "Alice", "a@x.com", "", 0)
	require.ErrorIs(t, err, auth.ErrInvalidInput)
}

func TestService_RegisterReadBackMiss(t *testing.T) {
	repo := newFakeUserRepo()
	repo.dropAfterCreate = true
	svc, _ := newService(t, repo)

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrAlreadyExists)
}

func TestService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(t, repo)

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "a@x.com", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
}

func TestService_LoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(t, repo)

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.NoError(t, err)

	_, wrongPass := svc.Login(context.Background(), "a@x.com", "wrong")
	_, unknownMail := svc.Login(context.Background(), "nobody@x.com", "pw1234")

	require.ErrorIs(t, wrongPass, auth.ErrInvalidCredentials)
	require.ErrorIs(t, unknownMail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownMail.Error())
}

func TestService_UserByID(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(t, repo)

	res, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.NoError(t, err)

	u, err := svc.UserByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	_, err = svc.UserByID(context.Background(), "missing-id")
	require.ErrorIs(t, err, auth.ErrNotFound)
}

func TestService_Refresh(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tokens := newService(t, repo)

	res, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw1234", 0)
	require.NoError(t, err)

	pair, err := svc.Refresh(res.RefreshToken)
	require.NoError(t, err)

	// New access token for the same subject; refresh token byte-identical.
	claims, err := tokens.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)
	assert.Equal(t, res.RefreshToken, pair.RefreshToken)
}

func TestService_RefreshExpired(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tokens := newService(t, repo)

	expired, err := tokens.Issue("user-42", -time.Second)
	require.NoError(t, err)

	_, err = svc.Refresh(expired)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestService_RefreshForged(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newService(t, repo)

	_, err := svc.Refresh("not.a.token")
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	other, err := auth.NewTokenService([]byte("another-secret"), time.Minute, time.Hour)
	require.NoError(t, err)
	forged, err := other.IssueRefresh("user-42")
	require.NoError(t, err)

	_, err = svc.Refresh(forged)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}
