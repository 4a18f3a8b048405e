// Package remote talks to the remote replica. The gateway is a thin
// transport: it moves entities and credentials over the wire and maps
// transport failures to the shared sentinel errors, leaving all merge and
// ownership decisions to the caller.
package remote

import (
	"context"

	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/common"
)

// Session is the result of a successful login.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Gateway is the client side of the remote replica API.
type Gateway interface {
	Register(ctx context.Context, login, password string) error
	Login(ctx context.Context, login, password string) (Session, error)
	Ping(ctx context.Context) error

	PushPrompt(ctx context.Context, p models.Prompt) error
	PushFolder(ctx context.Context, f models.Folder) error
	DeletePrompt(ctx context.Context, id string) error
	DeleteFolder(ctx context.Context, id string) error
	PullPrompts(ctx context.Context) ([]models.Prompt, error)
	PullFolders(ctx context.Context) ([]models.Folder, error)

	PresignExportUpload(ctx context.Context, name string) (string, error)

	SetToken(token string)
	Close() error
}

// DisabledGateway is selected when no server endpoint is configured. Auth
// operations report sync as disabled; data operations are silent no-ops so
// the rest of the client never needs to special-case local-only mode.
type DisabledGateway struct{}

func NewDisabledGateway() *DisabledGateway { return &DisabledGateway{} }

func (*DisabledGateway) Register(context.Context, string, string) error {
	return common.ErrSyncDisabled
}

func (*DisabledGateway) Login(context.Context, string, string) (Session, error) {
	return Session{}, common.ErrSyncDisabled
}

func (*DisabledGateway) Ping(context.Context) error { return common.ErrSyncDisabled }

func (*DisabledGateway) PushPrompt(context.Context, models.Prompt) error  { return nil }
func (*DisabledGateway) PushFolder(context.Context, models.Folder) error { return nil }
func (*DisabledGateway) DeletePrompt(context.Context, string) error      { return nil }
func (*DisabledGateway) DeleteFolder(context.Context, string) error      { return nil }

func (*DisabledGateway) PullPrompts(context.Context) ([]models.Prompt, error) { return nil, nil }
func (*DisabledGateway) PullFolders(context.Context) ([]models.Folder, error) { return nil, nil }

func (*DisabledGateway) PresignExportUpload(context.Context, string) (string, error) {
	return "", common.ErrSyncDisabled
}

func (*DisabledGateway) SetToken(string) {}
func (*DisabledGateway) Close() error    { return nil }
