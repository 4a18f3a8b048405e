// Package httpapi exposes the replica over JSON HTTP: account endpoints,
// per-collection document storage, and export presigning.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlukyanov/promptstash/internal/common"
	"github.com/mlukyanov/promptstash/internal/logging"
	"github.com/mlukyanov/promptstash/internal/server/models"
)

const maxBodySize = 1 << 20 // 1MB

// UserProvider is the account surface the API needs.
type UserProvider interface {
	Register(ctx context.Context, login, password string) (*models.User, error)
	Login(ctx context.Context, login, password string) (token string, userID string, err error)
}

// DocumentStore is the document surface the API needs.
type DocumentStore interface {
	Upsert(ctx context.Context, userID, collection, id string, payload json.RawMessage) error
	Delete(ctx context.Context, userID, collection, id string) error
	List(ctx context.Context, userID, collection string) ([]json.RawMessage, error)
}

// ExportPresigner issues upload and download URLs for export archives.
type ExportPresigner interface {
	PresignUpload(ctx context.Context, userID, name string) (string, error)
	PresignDownload(ctx context.Context, userID, name string) (string, error)
}

type Handler struct {
	users   UserProvider
	docs    DocumentStore
	exports ExportPresigner
	secret  []byte
	log     logging.Logger
}

func NewHandler(users UserProvider, docs DocumentStore, exports ExportPresigner, secret []byte, log logging.Logger) *Handler {
	return &Handler{users: users, docs: docs, exports: exports, secret: secret, log: log}
}

// Router builds the chi route tree.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/ping", h.handlePing)
	r.Post("/api/user/register", h.handleRegister)
	r.Post("/api/user/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.bearerAuth)
		r.Post("/api/exports/presign", h.handlePresign(h.exports.PresignUpload))
		r.Post("/api/exports/presign-download", h.handlePresign(h.exports.PresignDownload))
		r.Get("/api/{collection}", h.handleList)
		r.Put("/api/{collection}/{id}", h.handleUpsert)
		r.Delete("/api/{collection}/{id}", h.handleDelete)
	})

	return r
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decodeBody(w, r, &creds) {
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password are required", http.StatusBadRequest)
		return
	}

	if _, err := h.users.Register(r.Context(), creds.Login, creds.Password); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decodeBody(w, r, &creds) {
		return
	}

	token, userID, err := h.users.Login(r.Context(), creds.Login, creds.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":  token,
		"userId": userID,
	})
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.docs.Upsert(r.Context(), userIDFrom(r.Context()), collection, id, payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	if err := h.docs.Delete(r.Context(), userIDFrom(r.Context()), collection, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	payloads, err := h.docs.List(r.Context(), userIDFrom(r.Context()), collection)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (h *Handler) handlePresign(presign func(ctx context.Context, userID, name string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		url, err := presign(r.Context(), userIDFrom(r.Context()), req.Name)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors to HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrAlreadyExists):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		h.log.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
