package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
)

// Client is the remote API as seen by the session store and the CLI.
type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResponse, error)
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error)
	UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ChangeUserRole(ctx context.Context, userID uint64, role models.Role) (*models.RoleChange, error)
}

// TokenSource yields the credential to attach to outgoing requests.
// An empty string means "send unauthenticated".
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}
