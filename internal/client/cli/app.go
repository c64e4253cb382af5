package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/client/router"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// SessionService is the session store as used by the terminal.
type SessionService interface {
	IsAuthenticated() bool
	Token() string
	Profile() *models.User
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, payload models.RegisterPayload) error
	FetchProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error)
	UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error)
	Logout(ctx context.Context)
}

// AdminAPI is the part of the remote API behind the admin pages.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ChangeUserRole(ctx context.Context, userID uint64, role models.Role) (*models.RoleChange, error)
}

// Navigator resolves and authorizes paths.
type Navigator interface {
	Navigate(ctx context.Context, path string) (router.Location, error)
	Current() router.Location
}

type App struct {
	session SessionService
	admin   AdminAPI
	nav     Navigator
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error
}

func NewApp(session SessionService, admin AdminAPI, nav Navigator, log logging.Logger) *App {
	return &App{
		session: session,
		admin:   admin,
		nav:     nav,
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Notify prints a notice raised outside the current command.
func (a *App) Notify(msg string) {
	printlnFn("!", msg)
}

// Run blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the exchange client (type 'help' for commands)")
	if a.session.IsAuthenticated() {
		printlnFn("Restored session for", a.displayUser())
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
