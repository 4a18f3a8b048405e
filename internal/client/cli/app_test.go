package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukyanov/promptstash/internal/client/config"
	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/remote"
	"github.com/mlukyanov/promptstash/internal/client/services"
	"github.com/mlukyanov/promptstash/internal/logging"
)

type fakeStore struct {
	data map[string][]byte
}

func (f *fakeStore) Load(_ context.Context, collection string, v any) {
	if raw, ok := f.data[collection]; ok {
		_ = json.Unmarshal(raw, v)
	}
}

func (f *fakeStore) Save(_ context.Context, collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.data[collection] = raw
	return nil
}

func (f *fakeStore) SaveAll(ctx context.Context, pairs map[string]any) error {
	for collection, v := range pairs {
		if err := f.Save(ctx, collection, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) GetMeta(_ context.Context, key string) ([]byte, error) {
	return f.data["meta."+key], nil
}

func (f *fakeStore) SetMeta(_ context.Context, key string, value []byte) error {
	f.data["meta."+key] = value
	return nil
}

func (f *fakeStore) DeleteMeta(_ context.Context, key string) error {
	delete(f.data, "meta."+key)
	return nil
}

// newTestApp builds an App backed by in-memory storage, with the given
// scripted stdin and captured output.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := &fakeStore{data: map[string][]byte{}}
	lib := library.New(context.Background(), store, log)
	gw := remote.NewDisabledGateway()

	syncSvc := services.NewSyncService(lib, gw, log)
	lib.SetPusher(syncSvc)

	var out bytes.Buffer
	app := &App{
		config: &config.Config{ExportDir: t.TempDir()},
		log:    log,
		lib:    lib,
		gw:     gw,
		sync:   syncSvc,
		auth:   services.NewAuthService(gw, store, lib, log),
		backup: services.NewBackupService(lib, gw, log),
		Mode:   ModeDisabled,
		reader: bufio.NewReader(strings.NewReader(input)),
		w:      &out,
		filter: library.FilterAll,
		sort:   library.SortDateDesc,
	}

	origPrintln := printlnFn
	printlnFn = func(args ...any) (int, error) {
		return fmt.Fprintln(&out, args...)
	}
	t.Cleanup(func() { printlnFn = origPrintln })

	return app, &out
}

func TestDispatch_AddAndList(t *testing.T) {
	// Title, body (two lines + terminator), category, tags.
	app, out := newTestApp(t, "My prompt\nline one\nline two\n\nwriting\na,b\n")
	ctx := context.Background()

	assert.True(t, app.dispatch(ctx, "add"))
	assert.Contains(t, out.String(), "Added: My prompt")

	out.Reset()
	assert.True(t, app.dispatch(ctx, "list"))
	assert.Contains(t, out.String(), "My prompt")
	assert.Contains(t, out.String(), "#a #b")
	assert.Contains(t, out.String(), "[pending]")
}

func TestDispatch_StarAndFavoritesFilter(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	_, err := app.lib.AddPrompt(ctx, "One", "b", "c", nil, "", false)
	require.NoError(t, err)
	_, err = app.lib.AddPrompt(ctx, "Two", "b", "c", nil, "", false)
	require.NoError(t, err)

	assert.True(t, app.dispatch(ctx, "star 1"))
	assert.Contains(t, out.String(), "Starred:")

	out.Reset()
	assert.True(t, app.dispatch(ctx, "list favorites"))
	assert.Contains(t, out.String(), "Two", "listing is newest first, Two was starred")
	assert.NotContains(t, out.String(), "One")
}

func TestDispatch_CopyRecordsUse(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	p, err := app.lib.AddPrompt(ctx, "One", "the body", "c", nil, "", false)
	require.NoError(t, err)

	assert.True(t, app.dispatch(ctx, "copy 1"))
	assert.Contains(t, out.String(), "the body")

	got, _ := app.lib.GetPrompt(p.ID)
	assert.Equal(t, 1, got.UseCount)
}

func TestDispatch_Delete(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	_, err := app.lib.AddPrompt(ctx, "Doomed", "b", "c", nil, "", false)
	require.NoError(t, err)

	assert.True(t, app.dispatch(ctx, "delete 1"))
	assert.Contains(t, out.String(), "Deleted: Doomed")
	assert.Empty(t, app.lib.ListPrompts(library.FilterAll))
}

func TestDispatch_BadNumber(t *testing.T) {
	app, out := newTestApp(t, "")

	assert.True(t, app.dispatch(context.Background(), "show 7"))
	assert.Contains(t, out.String(), "Error:")
}

func TestDispatch_Folders(t *testing.T) {
	app, out := newTestApp(t, "Work\ngreen\n")
	ctx := context.Background()

	assert.True(t, app.dispatch(ctx, "folders add"))
	assert.Contains(t, out.String(), "Added folder: Work")

	out.Reset()
	assert.True(t, app.dispatch(ctx, "folders"))
	assert.Contains(t, out.String(), "Work (green)")

	out.Reset()
	assert.True(t, app.dispatch(ctx, "folders rm 1"))
	assert.Contains(t, out.String(), "Removed folder: Work")
}

func TestDispatch_Theme(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	assert.True(t, app.dispatch(ctx, "theme dark"))
	out.Reset()
	assert.True(t, app.dispatch(ctx, "theme"))
	assert.Contains(t, out.String(), "dark")

	out.Reset()
	assert.True(t, app.dispatch(ctx, "theme neon"))
	assert.Contains(t, out.String(), "Error:")
}

func TestDispatch_ExitAndUnknown(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	assert.True(t, app.dispatch(ctx, "bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")

	assert.False(t, app.dispatch(ctx, "exit"))
	assert.True(t, app.dispatch(ctx, ""))
}

func TestDispatch_Status(t *testing.T) {
	app, out := newTestApp(t, "")

	assert.True(t, app.dispatch(context.Background(), "status"))
	assert.Contains(t, out.String(), "idle")
}

func TestDispatch_ExportAndImport(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	_, err := app.lib.AddPrompt(ctx, "One", "b", "c", nil, "", false)
	require.NoError(t, err)

	assert.True(t, app.dispatch(ctx, "export"))
	assert.Contains(t, out.String(), "Exported to")

	path := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out.String()), "Exported to"))
	out.Reset()
	assert.True(t, app.dispatch(ctx, "import "+path))
	assert.Contains(t, out.String(), "Imported 1 prompt(s).")
	assert.Len(t, app.lib.ListPrompts(library.FilterAll), 2)
}

// NewApp must be able to open a fresh database file end to end: driver
// registration, migrations, and session restore.
func TestNewApp_OpensLocalDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DatabaseDSN: filepath.Join(dir, "prompts.db"),
		ExportDir:   dir,
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app, err := NewApp(context.Background(), cfg, log)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, ModeDisabled, app.Mode)

	_, err = app.lib.AddPrompt(context.Background(), "t", "b", "c", nil, "", false)
	require.NoError(t, err)
}
