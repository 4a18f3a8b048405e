package library

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/common"
)

func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := newTestLibrary(t)
	ctx := context.Background()

	f, err := src.AddFolder(ctx, "Work", models.ColorGreen)
	require.NoError(t, err)
	_, err = src.AddPrompt(ctx, "Greeting", "Hello", "General", []string{"x"}, f.ID, true)
	require.NoError(t, err)
	_, err = src.AddPrompt(ctx, "Second", "Body", "Coding", nil, "", false)
	require.NoError(t, err)

	data, err := src.Export()
	require.NoError(t, err)

	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, models.ExportVersion, doc.Version)
	assert.Len(t, doc.Prompts, 2)
	assert.Len(t, doc.Folders, 1)

	dst, _ := newTestLibrary(t)
	count, err := dst.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	imported := dst.ListPrompts(FilterAll)
	require.Len(t, imported, 2)
	// Import prepends, so the export's first prompt ends up last of the
	// imported block.
	assert.Equal(t, "Second", imported[0].Title)
	assert.Equal(t, "Greeting", imported[1].Title)
	for _, p := range imported {
		assert.NotEqual(t, "", p.ID)
		assert.Equal(t, models.SyncStatePending, p.SyncState)
	}

	folders := dst.ListFolders()
	require.Len(t, folders, 1)
	assert.Equal(t, "Work", folders[0].Name)
	assert.NotEqual(t, f.ID, folders[0].ID, "folder ids are regenerated")
}

func TestImport_FreshIDsAvoidCollisions(t *testing.T) {
	l, _ := newTestLibrary(t)
	ctx := context.Background()

	p, err := l.AddPrompt(ctx, "original", "b", "c", nil, "", false)
	require.NoError(t, err)

	data, err := l.Export()
	require.NoError(t, err)

	// Importing an export of yourself duplicates entries instead of
	// overwriting them.
	count, err := l.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all := l.ListPrompts(FilterAll)
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.NotEqual(t, p.ID, all[0].ID)
}

func TestImport_LegacyArray(t *testing.T) {
	l, _ := newTestLibrary(t)
	ctx := context.Background()
	l.SetIdentity("user-1")

	legacy := `[
	  {"title":"Old one","text":"body text","category":"writing","tags":["a"],"starred":true,
	   "dateAdded":"2023-05-01T10:00:00Z","useCount":7},
	  {"title":"Old two","text":"more","category":"coding","dateAdded":"2023-06-01T10:00:00Z"}
	]`

	count, err := l.Import(ctx, []byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all := l.ListPrompts(FilterAll)
	require.Len(t, all, 2)

	// Prepended in array order: the second legacy entry is first.
	first := all[1]
	assert.Equal(t, "Old one", first.Title)
	assert.Equal(t, "body text", first.Body)
	assert.Equal(t, []string{"a"}, first.Tags)
	assert.True(t, first.Starred)
	assert.Equal(t, 7, first.UseCount)
	assert.Equal(t, "user-1", first.OwnerID)
	assert.Equal(t, models.SyncStatePending, first.SyncState)
	assert.Equal(t, first.CreatedAt, first.ModifiedAt, "legacy entries backfill ModifiedAt")
}

func TestImport_MalformedLeavesStateUntouched(t *testing.T) {
	l, _ := newTestLibrary(t)
	ctx := context.Background()

	_, err := l.AddPrompt(ctx, "keep", "b", "c", nil, "", false)
	require.NoError(t, err)

	for _, payload := range []string{
		`{not json`,
		`"just a string"`,
		`{"version":1,"prompts":[]}`,
		`{"version":99,"prompts":[]}`,
	} {
		count, err := l.Import(ctx, []byte(payload))
		assert.Zero(t, count, payload)
		assert.True(t, errors.Is(err, common.ErrInvalidImport), payload)
	}

	all := l.ListPrompts(FilterAll)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Title)
}

func TestImport_EmptyLegacyArray(t *testing.T) {
	l, _ := newTestLibrary(t)

	count, err := l.Import(context.Background(), []byte(`[]`))
	require.NoError(t, err)
	assert.Zero(t, count)
}
