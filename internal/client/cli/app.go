package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mlukyanov/promptstash/internal/client/config"
	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/remote"
	"github.com/mlukyanov/promptstash/internal/client/repositories/localstore"
	"github.com/mlukyanov/promptstash/internal/client/services"
	"github.com/mlukyanov/promptstash/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config *config.Config
	log    logging.Logger

	lib    *library.Library
	gw     remote.Gateway
	sync   *services.SyncService
	auth   *services.AuthService
	backup *services.BackupService

	Mode     Mode
	userName string
	reader   *bufio.Reader
	w        io.Writer

	// Active listing filter and sort, adjustable from the list command.
	filter string
	sort   library.SortMode
}

func (a *App) out() io.Writer {
	return a.w
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {

	db, err := localstore.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	store := localstore.NewSQLiteStore(db, log)

	lib := library.New(ctx, store, log)

	var gw remote.Gateway
	mode := ModeDisabled
	if c.SyncEnabled() {
		gw = remote.NewHTTPGateway(c.ServerEndpointURL)
		mode = ModeOffline
	} else {
		gw = remote.NewDisabledGateway()
	}

	syncSvc := services.NewSyncService(lib, gw, log)
	lib.SetPusher(syncSvc)

	app := &App{
		config: c,
		log:    log,
		lib:    lib,
		gw:     gw,
		sync:   syncSvc,
		auth:   services.NewAuthService(gw, store, lib, log),
		backup: services.NewBackupService(lib, gw, log),
		Mode:   mode,
		reader: bufio.NewReader(os.Stdin),
		w:      os.Stdout,
		filter: library.FilterAll,
		sort:   library.SortDateDesc,
	}

	// A persisted session survives restarts.
	if ok, err := app.auth.Restore(ctx); err != nil {
		log.Warn(ctx, "error restoring session", "error", err.Error())
	} else if ok {
		app.userName = lib.Identity()
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.gw.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.lib.Identity() != ""
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to", string(mode), "mode")
	}
}

// StartOnlineStatusWatcher probes the server every interval and flips the
// mode accordingly. When connectivity comes back it drains the pending set.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if a.Mode == ModeDisabled {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.gw.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
				continue
			}
			if a.Mode != ModeOnline {
				a.setMode(ModeOnline)
				if a.isLoggedIn() {
					if err := a.sync.SyncPending(ctx); err != nil {
						a.log.Warn(ctx, "error syncing pending entities", "error", err.Error())
					}
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
