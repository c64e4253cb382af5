package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/exchangeclient/internal/client/client"
	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/client/session"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

var errPasswordMismatch = errors.New("passwords do not match")

// report prints the outcome of a failed command. Server-supplied messages
// are shown verbatim. Failures already announced by the supervisor
// (expired session, missing rights, server down) are not repeated.
func (a *App) report(ctx context.Context, action string, err error) {
	a.log.Debug(ctx, action+" failed", "error", err)

	switch {
	case session.IsAuthError(err):
		printlnFn(action+" failed:", err.Error())
	case errors.Is(err, client.ErrUnauthorized),
		errors.Is(err, client.ErrForbidden),
		errors.Is(err, client.ErrServer),
		errors.Is(err, client.ErrUnavailable):
	default:
		printlnFn(action+" failed:", err.Error())
	}
}

// Register prompts for the account fields and creates the account. Only
// username and password are required. On success the user is logged in and
// taken home.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	if string(password) != string(confirm) {
		printlnFn("Registration failed:", errPasswordMismatch.Error())
		return errPasswordMismatch
	}

	nickname, err := getSimpleText(a.reader, "Nickname (optional)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email (optional)", a.out)
	if err != nil {
		return err
	}

	payload := models.RegisterPayload{
		Username: username,
		Password: string(password),
		Nickname: nickname,
		Email:    email,
	}
	if err := a.session.Register(ctx, payload); err != nil {
		a.report(ctx, "Registration", err)
		return err
	}

	printlnFn("Registered as", username)
	_, err = a.nav.Navigate(ctx, "/")
	return err
}

// Login prompts for credentials, authenticates and goes home.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	before := a.session.Token()
	if err := a.session.Login(ctx, username, string(password)); err != nil {
		if !a.session.IsAuthenticated() || a.session.Token() == before {
			a.report(ctx, "Login", err)
			return err
		}
		// new credential held, but the profile could not be loaded yet
		a.log.Warn(ctx, "profile not loaded after login", "error", err)
	}

	printlnFn("Logged in as", a.displayUser())
	_, err = a.nav.Navigate(ctx, "/")
	return err
}

// Logout ends the session and returns to the login page.
func (a *App) Logout(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		printlnFn("Not logged in")
		return nil
	}
	a.session.Logout(ctx)
	printlnFn("Logged out")
	_, err := a.nav.Navigate(ctx, "/login")
	return err
}
