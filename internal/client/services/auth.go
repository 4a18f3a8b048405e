package services

import (
	"context"
	"fmt"

	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/remote"
	"github.com/mlukyanov/promptstash/internal/client/repositories/localstore"
	"github.com/mlukyanov/promptstash/internal/logging"
)

// Metadata keys for the persisted session.
const (
	metaToken    = "auth.token"
	metaIdentity = "auth.identity"
)

// AuthService manages the session against the remote replica and keeps it in
// the local metadata store so a restart stays signed in.
type AuthService struct {
	gw   remote.Gateway
	meta localstore.MetaStore
	lib  *library.Library
	log  logging.Logger
}

func NewAuthService(gw remote.Gateway, meta localstore.MetaStore, lib *library.Library, log logging.Logger) *AuthService {
	return &AuthService{gw: gw, meta: meta, lib: lib, log: log}
}

// Register creates an account on the replica. It does not sign in.
func (a *AuthService) Register(ctx context.Context, login, password string) error {
	if err := a.gw.Register(ctx, login, password); err != nil {
		return fmt.Errorf("error registering: %w", err)
	}
	return nil
}

// Login authenticates against the replica, installs the bearer token on the
// gateway, sets the library identity, and persists the session.
func (a *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	session, err := a.gw.Login(ctx, login, password)
	if err != nil {
		return "", fmt.Errorf("error logging in: %w", err)
	}

	a.gw.SetToken(session.Token)
	a.lib.SetIdentity(session.UserID)

	if err := a.meta.SetMeta(ctx, metaToken, []byte(session.Token)); err != nil {
		a.log.Error(ctx, "error persisting session token", "error", err.Error())
	}
	if err := a.meta.SetMeta(ctx, metaIdentity, []byte(session.UserID)); err != nil {
		a.log.Error(ctx, "error persisting identity", "error", err.Error())
	}
	return session.UserID, nil
}

// Restore re-installs a persisted session, if any. Returns true when the
// client is signed in afterwards.
func (a *AuthService) Restore(ctx context.Context) (bool, error) {
	token, err := a.meta.GetMeta(ctx, metaToken)
	if err != nil {
		return false, fmt.Errorf("error reading session token: %w", err)
	}
	identity, err := a.meta.GetMeta(ctx, metaIdentity)
	if err != nil {
		return false, fmt.Errorf("error reading identity: %w", err)
	}
	if len(token) == 0 || len(identity) == 0 {
		return false, nil
	}

	a.gw.SetToken(string(token))
	a.lib.SetIdentity(string(identity))
	return true, nil
}

// Logout drops the session. Local data is untouched and stays readable;
// entity ownership never reverts.
func (a *AuthService) Logout(ctx context.Context) error {
	a.gw.SetToken("")
	a.lib.SetIdentity("")

	if err := a.meta.DeleteMeta(ctx, metaToken); err != nil {
		return fmt.Errorf("error clearing session token: %w", err)
	}
	if err := a.meta.DeleteMeta(ctx, metaIdentity); err != nil {
		return fmt.Errorf("error clearing identity: %w", err)
	}
	return nil
}
