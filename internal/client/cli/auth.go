package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) register(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Login", a.out())
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out())
	if err != nil {
		return err
	}
	if err := a.auth.Register(ctx, login, password); err != nil {
		return err
	}
	printlnFn("Registered. Use 'login' to sign in.")
	return nil
}

// login authenticates, pulls and merges the remote catalogue, and then
// offers claim migration for any prompts created before sign-in. Migration
// runs only after the pull-and-merge finished and only with explicit consent.
func (a *App) login(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Login", a.out())
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out())
	if err != nil {
		return err
	}

	identity, err := a.auth.Login(ctx, login, password)
	if err != nil {
		return err
	}
	a.userName = identity
	a.setMode(ModeOnline)

	unclaimed, err := a.sync.SignIn(ctx)
	if err != nil {
		printlnFn("Signed in, but the first sync failed:", err.Error())
		return nil
	}
	printlnFn("Signed in.")

	if unclaimed > 0 {
		q := fmt.Sprintf("You have %d local prompt(s) not linked to this account. Link them now? (y/n)", unclaimed)
		answer, err := GetSimpleText(a.reader, q, a.out())
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
			count, err := a.sync.Migrate(ctx)
			if err != nil {
				return err
			}
			printlnFn("Linked", count, "prompt(s) to your account.")
		}
	}
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	if a.Mode == ModeOnline {
		a.setMode(ModeOffline)
	}
	printlnFn("Signed out. Your prompts stay on this device.")
	return nil
}

func (a *App) syncNow(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}
	if _, err := a.sync.SignIn(ctx); err != nil {
		return err
	}
	if err := a.sync.SyncPending(ctx); err != nil {
		return err
	}
	printlnFn("Synced.")
	return nil
}
