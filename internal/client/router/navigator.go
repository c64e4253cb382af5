package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// ErrMissingRoute means a redirect target is absent from the table.
var ErrMissingRoute = errors.New("route table has no such route")

// Location is where a navigation ended.
type Location struct {
	Route  Route
	Path   string
	Params map[string]string
	// RedirectedFrom is the requested path when a redirect happened.
	RedirectedFrom string
	// Decision explains the redirect, if any.
	Decision Decision
}

// Redirected reports whether the navigation ended somewhere else than asked.
func (l Location) Redirected() bool {
	return l.RedirectedFrom != ""
}

// Navigator resolves paths, authorizes them and tracks the current location.
type Navigator struct {
	routes *Table
	auth   *Authorizer
	log    logging.Logger

	mu      sync.RWMutex
	current Location
}

// NewNavigator starts at the Home route.
func NewNavigator(routes *Table, auth *Authorizer, log logging.Logger) (*Navigator, error) {
	home, ok := routes.Named(Home)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRoute, Home)
	}
	if _, ok := routes.Named(Login); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRoute, Login)
	}
	return &Navigator{
		routes:  routes,
		auth:    auth,
		log:     log.With("component", "navigator"),
		current: Location{Route: home, Path: home.Path},
	}, nil
}

// Current returns the location of the last completed navigation.
func (n *Navigator) Current() Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Navigate moves to path. Unknown paths go home. A redirect decision is
// final: the redirect target itself is entered without another check, since
// Login and Home carry no requirements.
//
// No lock is held while authorizing, so a navigation triggered from inside
// an authorization (for example by a 401 during the profile fetch) does not
// deadlock. The navigation that finishes last sets the current location.
func (n *Navigator) Navigate(ctx context.Context, path string) (Location, error) {
	requested := CleanPath(path)

	route, params, ok := n.routes.Match(requested)
	if !ok {
		n.log.Debug(ctx, "no route matched, going home", "path", requested)
		loc, err := n.redirect(Home, requested, Decision{Outcome: RedirectHome, Reason: "no such page"})
		if err != nil {
			return Location{}, err
		}
		return n.commit(ctx, loc), nil
	}

	d := n.auth.Authorize(ctx, route)
	if d.Outcome == Allow {
		return n.commit(ctx, Location{Route: route, Path: requested, Params: params}), nil
	}

	loc, err := n.redirect(d.Outcome.Target(), requested, d)
	if err != nil {
		return Location{}, err
	}
	return n.commit(ctx, loc), nil
}

func (n *Navigator) redirect(name, from string, d Decision) (Location, error) {
	target, ok := n.routes.Named(name)
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrMissingRoute, name)
	}
	return Location{Route: target, Path: target.Path, RedirectedFrom: from, Decision: d}, nil
}

func (n *Navigator) commit(ctx context.Context, loc Location) Location {
	n.mu.Lock()
	n.current = loc
	n.mu.Unlock()

	if loc.Redirected() {
		n.log.Info(ctx, "navigation redirected", "from", loc.RedirectedFrom, "to", loc.Path, "reason", loc.Decision.Reason)
	} else {
		n.log.Debug(ctx, "navigated", "path", loc.Path, "route", loc.Route.Name)
	}
	return loc
}
