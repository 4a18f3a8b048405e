package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/common"
)

func TestLogin_ReturnsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/login", r.URL.Path)

		var creds credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Login)
		assert.Equal(t, "secret", creds.Password)

		json.NewEncoder(w).Encode(Session{Token: "tok-1", UserID: "user-1"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	s, err := g.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, "user-1", s.UserID)
}

func TestRegister_ConflictMapsToAlreadyExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	err := g.Register(context.Background(), "alice", "secret")
	assert.True(t, errors.Is(err, common.ErrAlreadyExists))
}

func TestPushPrompt_BearerTokenAndSyncedState(t *testing.T) {
	var gotAuth string
	var gotPrompt models.Prompt
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/prompts/p-1", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPrompt))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	g.SetToken("tok-1")

	p := models.Prompt{ID: "p-1", Title: "t", SyncState: models.SyncStatePending, ModifiedAt: time.Now().UTC()}
	require.NoError(t, g.PushPrompt(context.Background(), p))

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, models.SyncStateSynced, gotPrompt.SyncState, "pending never leaves the client")
}

func TestPullPrompts(t *testing.T) {
	want := []models.Prompt{{ID: "a", Title: "one"}, {ID: "b", Title: "two"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/prompts", r.URL.Path)
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	got, err := g.PullPrompts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Title)
}

func TestDeletePrompt_Idempotent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	require.NoError(t, g.DeletePrompt(context.Background(), "p-1"))
	require.NoError(t, g.DeletePrompt(context.Background(), "p-1"))
	assert.Equal(t, 2, calls)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, common.ErrUnauthorized},
		{http.StatusForbidden, common.ErrUnauthorized},
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusConflict, common.ErrAlreadyExists},
		{http.StatusBadRequest, common.ErrInternal},
		{http.StatusInternalServerError, common.ErrUnavailable},
		{http.StatusBadGateway, common.ErrUnavailable},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
		}))
		g := NewHTTPGateway(srv.URL)
		err := g.Ping(context.Background())
		assert.True(t, errors.Is(err, tt.want), "status %d", tt.code)
		srv.Close()
	}
}

func TestConnectionErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := NewHTTPGateway(srv.URL)
	err := g.Ping(context.Background())
	assert.True(t, errors.Is(err, common.ErrUnavailable))
}

func TestPresignExportUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/exports/presign", r.URL.Path)
		var req struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "backup.json", req.Name)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://bucket/presigned"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	url, err := g.PresignExportUpload(context.Background(), "backup.json")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/presigned", url)
}

func TestDisabledGateway(t *testing.T) {
	g := NewDisabledGateway()
	ctx := context.Background()

	assert.ErrorIs(t, g.Register(ctx, "a", "b"), common.ErrSyncDisabled)
	_, err := g.Login(ctx, "a", "b")
	assert.ErrorIs(t, err, common.ErrSyncDisabled)
	assert.ErrorIs(t, g.Ping(ctx), common.ErrSyncDisabled)

	assert.NoError(t, g.PushPrompt(ctx, models.Prompt{}))
	assert.NoError(t, g.DeletePrompt(ctx, "x"))
	prompts, err := g.PullPrompts(ctx)
	assert.NoError(t, err)
	assert.Empty(t, prompts)
	assert.NoError(t, g.Close())
}

func TestPushPrompt_RepeatedPushLeavesReplicaIdentical(t *testing.T) {
	replica := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p models.Prompt
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		replica[p.ID] = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	p := models.Prompt{
		ID:         "p-1",
		Title:      "t",
		Body:       "b",
		SyncState:  models.SyncStatePending,
		ModifiedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, g.PushPrompt(context.Background(), p))
	afterFirst := map[string]string{}
	for id, raw := range replica {
		afterFirst[id] = raw
	}

	require.NoError(t, g.PushPrompt(context.Background(), p))
	assert.Equal(t, afterFirst, replica)
	assert.Len(t, replica, 1)
}
