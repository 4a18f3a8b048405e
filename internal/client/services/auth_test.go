package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/remote"
	"github.com/mlukyanov/promptstash/internal/common"
)

// fakeMeta is an in-memory localstore.MetaStore.
type fakeMeta struct {
	data map[string][]byte
}

func newFakeMeta() *fakeMeta {
	return &fakeMeta{data: map[string][]byte{}}
}

func (f *fakeMeta) GetMeta(_ context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeMeta) SetMeta(_ context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

func (f *fakeMeta) DeleteMeta(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

// authGateway serves canned auth responses.
type authGateway struct {
	remote.DisabledGateway

	token       string
	session     remote.Session
	loginErr    error
	registerErr error
	registered  []string
}

func (f *authGateway) Register(_ context.Context, login, _ string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, login)
	return nil
}

func (f *authGateway) Login(context.Context, string, string) (remote.Session, error) {
	if f.loginErr != nil {
		return remote.Session{}, f.loginErr
	}
	return f.session, nil
}

func (f *authGateway) SetToken(token string) { f.token = token }

func newAuthFixture(t *testing.T) (*library.Library, *authGateway, *fakeMeta, *AuthService) {
	t.Helper()
	lib := library.New(context.Background(), newFakeStore(), testLogger())
	gw := &authGateway{}
	meta := newFakeMeta()
	return lib, gw, meta, NewAuthService(gw, meta, lib, testLogger())
}

func TestLogin_InstallsSessionAndPersists(t *testing.T) {
	lib, gw, meta, auth := newAuthFixture(t)
	gw.session = remote.Session{Token: "tok-1", UserID: "user-1"}

	identity, err := auth.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, "user-1", identity)
	assert.Equal(t, "tok-1", gw.token)
	assert.Equal(t, "user-1", lib.Identity())
	assert.Equal(t, []byte("tok-1"), meta.data[metaToken])
	assert.Equal(t, []byte("user-1"), meta.data[metaIdentity])
}

func TestLogin_ErrorPropagates(t *testing.T) {
	lib, gw, _, auth := newAuthFixture(t)
	gw.loginErr = common.ErrUnauthorized

	_, err := auth.Login(context.Background(), "alice", "wrong")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	assert.Empty(t, lib.Identity())
}

func TestRegister_Delegates(t *testing.T) {
	_, gw, _, auth := newAuthFixture(t)

	require.NoError(t, auth.Register(context.Background(), "alice", "secret"))
	assert.Equal(t, []string{"alice"}, gw.registered)

	gw.registerErr = common.ErrAlreadyExists
	err := auth.Register(context.Background(), "alice", "secret")
	assert.True(t, errors.Is(err, common.ErrAlreadyExists))
}

func TestRestore(t *testing.T) {
	lib, gw, meta, auth := newAuthFixture(t)
	ctx := context.Background()

	// Nothing persisted: stays signed out.
	ok, err := auth.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, meta.SetMeta(ctx, metaToken, []byte("tok-1")))
	require.NoError(t, meta.SetMeta(ctx, metaIdentity, []byte("user-1")))

	ok, err = auth.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", gw.token)
	assert.Equal(t, "user-1", lib.Identity())
}

func TestLogout_KeepsLocalData(t *testing.T) {
	lib, gw, meta, auth := newAuthFixture(t)
	ctx := context.Background()

	gw.session = remote.Session{Token: "tok-1", UserID: "user-1"}
	_, err := auth.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	p, err := lib.AddPrompt(ctx, "owned", "b", "c", nil, "", false)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))

	assert.Empty(t, gw.token)
	assert.Empty(t, lib.Identity())
	assert.Empty(t, meta.data)

	got, found := lib.GetPrompt(p.ID)
	require.True(t, found, "local data survives sign-out")
	assert.Equal(t, "user-1", got.OwnerID, "ownership never reverts")
}
