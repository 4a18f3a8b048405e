package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/common"
)

const requestTimeout = 10 * time.Second

// HTTPGateway implements Gateway over the replica's JSON HTTP API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPGateway(endpoint string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(endpoint, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// SetToken installs the bearer token used for authenticated calls. An empty
// token clears it.
func (g *HTTPGateway) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
}

func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (g *HTTPGateway) Register(ctx context.Context, login, password string) error {
	return g.do(ctx, http.MethodPost, "/api/user/register", credentials{login, password}, nil)
}

func (g *HTTPGateway) Login(ctx context.Context, login, password string) (Session, error) {
	var s Session
	if err := g.do(ctx, http.MethodPost, "/api/user/login", credentials{login, password}, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (g *HTTPGateway) Ping(ctx context.Context) error {
	return g.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// PushPrompt writes the prompt to the replica. The stored copy is always
// marked synced: pending is a local-only flag.
func (g *HTTPGateway) PushPrompt(ctx context.Context, p models.Prompt) error {
	p.SyncState = models.SyncStateSynced
	return g.do(ctx, http.MethodPut, "/api/prompts/"+url.PathEscape(p.ID), p, nil)
}

func (g *HTTPGateway) PushFolder(ctx context.Context, f models.Folder) error {
	return g.do(ctx, http.MethodPut, "/api/folders/"+url.PathEscape(f.ID), f, nil)
}

func (g *HTTPGateway) DeletePrompt(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/prompts/"+url.PathEscape(id), nil, nil)
}

func (g *HTTPGateway) DeleteFolder(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/folders/"+url.PathEscape(id), nil, nil)
}

func (g *HTTPGateway) PullPrompts(ctx context.Context) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := g.do(ctx, http.MethodGet, "/api/prompts", nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (g *HTTPGateway) PullFolders(ctx context.Context) ([]models.Folder, error) {
	var folders []models.Folder
	if err := g.do(ctx, http.MethodGet, "/api/folders", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (g *HTTPGateway) PresignExportUpload(ctx context.Context, name string) (string, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	var resp struct {
		URL string `json:"url"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/exports/presign", req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	g.mu.RLock()
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	g.mu.RUnlock()

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatus(resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

// mapStatus translates an HTTP error status to a sentinel error so callers
// can branch with errors.Is instead of inspecting the transport.
func mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrAlreadyExists
	case http.StatusBadRequest:
		return fmt.Errorf("%w: bad request", common.ErrInternal)
	default:
		if code >= 500 {
			return fmt.Errorf("%w: status %d", common.ErrUnavailable, code)
		}
		return fmt.Errorf("%w: status %d", common.ErrInternal, code)
	}
}
