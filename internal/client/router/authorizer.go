package router

import (
	"context"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// Outcome is the result of authorizing one navigation attempt.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Target is the route name a redirect outcome points at ("" for Allow).
func (o Outcome) Target() string {
	switch o {
	case RedirectLogin:
		return Login
	case RedirectHome:
		return Home
	default:
		return ""
	}
}

// Decision is an Outcome plus the reason, for logs and the terminal.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Session is the session state the authorizer reads. FetchProfile is the
// only call that may block.
type Session interface {
	IsAuthenticated() bool
	Profile() *models.User
	FetchProfile(ctx context.Context) error
}

// Authorizer gates navigation on route requirements.
type Authorizer struct {
	session Session
	log     logging.Logger
}

func NewAuthorizer(session Session, log logging.Logger) *Authorizer {
	return &Authorizer{session: session, log: log.With("component", "authorizer")}
}

// Authorize decides whether route may be entered with the current session.
// The authentication gate is evaluated before the admin gate. A missing
// profile is fetched once; any fetch failure redirects to login.
func (a *Authorizer) Authorize(ctx context.Context, route Route) Decision {
	d := a.decide(ctx, route)
	a.log.Debug(ctx, "route authorized", "route", route.Name, "requires", route.Requires.String(),
		"outcome", d.Outcome.String(), "reason", d.Reason)
	return d
}

func (a *Authorizer) decide(ctx context.Context, route Route) Decision {
	if route.Requires.Has(RequiresAuth) && !a.session.IsAuthenticated() {
		return Decision{Outcome: RedirectLogin, Reason: "login required"}
	}

	if !route.Requires.Has(RequiresAdmin) {
		return Decision{Outcome: Allow}
	}

	if !a.session.IsAuthenticated() {
		return Decision{Outcome: RedirectLogin, Reason: "login required"}
	}

	profile := a.session.Profile()
	if profile == nil {
		if err := a.session.FetchProfile(ctx); err != nil {
			a.log.Warn(ctx, "profile fetch during authorization failed", "route", route.Name, "error", err)
			return Decision{Outcome: RedirectLogin, Reason: "could not load profile"}
		}
		// the session may have ended while the fetch was in flight
		if profile = a.session.Profile(); profile == nil {
			return Decision{Outcome: RedirectLogin, Reason: "could not load profile"}
		}
	}

	if !profile.IsAdmin() {
		return Decision{Outcome: RedirectHome, Reason: "admin role required"}
	}
	return Decision{Outcome: Allow}
}
