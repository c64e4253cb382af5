package cli

import (
	"fmt"

	"github.com/dmitrijs2005/exchangeclient/internal/client/tokenx"
)

// displayUser names the current user: the cached profile when there is one,
// else the username in the token, else "?".
func (a *App) displayUser() string {
	if p := a.session.Profile(); p != nil {
		return p.Username
	}
	if c, err := tokenx.Inspect(a.session.Token()); err == nil && c.Username != "" {
		return c.Username
	}
	return "?"
}

// getStatus renders the prompt status: the current path and, when logged
// in, the user.
func (a *App) getStatus() string {
	path := a.nav.Current().Path
	if !a.session.IsAuthenticated() {
		return path
	}
	return fmt.Sprintf("%s (%s)", path, a.displayUser())
}
