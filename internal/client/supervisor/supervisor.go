// Package supervisor reacts to transport failures that concern the whole
// client rather than the call that hit them: an invalid session, missing
// rights, a failing server or an unreachable network.
package supervisor

import (
	"context"

	"github.com/dmitrijs2005/exchangeclient/internal/client/client"
	"github.com/dmitrijs2005/exchangeclient/internal/client/router"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// Notices shown to the user.
const (
	NoticeSessionExpired   = "session expired, please log in again"
	NoticePermissionDenied = "permission denied"
	NoticeServerError      = "server error, try again later"
	NoticeUnreachable      = "request timed out or network unreachable"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(msg string)
}

// Session is the part of the session store the supervisor tears down.
type Session interface {
	IsAuthenticated() bool
	Logout(ctx context.Context)
}

// Navigator moves the user.
type Navigator interface {
	Navigate(ctx context.Context, path string) (router.Location, error)
	Current() router.Location
}

// Supervisor is subscribed once to the transport (see Attach).
type Supervisor struct {
	ctx      context.Context
	session  Session
	nav      Navigator
	notifier Notifier
	log      logging.Logger
}

// New returns a supervisor whose handlers run under ctx, the lifetime of the
// client process.
func New(ctx context.Context, session Session, nav Navigator, notifier Notifier, log logging.Logger) *Supervisor {
	return &Supervisor{
		ctx:      ctx,
		session:  session,
		nav:      nav,
		notifier: notifier,
		log:      log.With("component", "supervisor"),
	}
}

// Subscriber is implemented by transports that publish events.
type Subscriber interface {
	Subscribe(h client.EventHandler)
}

// Attach subscribes s to every event published by t.
func (s *Supervisor) Attach(t Subscriber) {
	t.Subscribe(s.Handle)
}

// Handle reacts to one transport event.
//
//	Unauthorized: end the session, go to the login page.
//	Forbidden:    keep the session, go home unless already there.
//	ServerError:  notice only, the caller may retry.
//	Unreachable:  notice only.
func (s *Supervisor) Handle(ev client.Event) {
	ctx := s.ctx
	s.log.Debug(ctx, "handling transport event", "kind", ev.Kind, "method", ev.Method, "path", ev.Path, "status", ev.StatusCode)

	switch ev.Kind {
	case client.EventUnauthorized:
		wasAuthenticated := s.session.IsAuthenticated()
		s.session.Logout(ctx)
		if wasAuthenticated {
			s.log.Info(ctx, "session rejected by server", "method", ev.Method, "path", ev.Path)
			s.notifier.Notify(NoticeSessionExpired)
		}
		s.navigate(ctx, "/login")

	case client.EventForbidden:
		s.notifier.Notify(NoticePermissionDenied)
		if s.nav.Current().Path != "/" {
			s.navigate(ctx, "/")
		}

	case client.EventServerError:
		s.log.Warn(ctx, "server error", "method", ev.Method, "path", ev.Path, "status", ev.StatusCode)
		s.notifier.Notify(NoticeServerError)

	case client.EventUnreachable:
		s.log.Warn(ctx, "server unreachable", "method", ev.Method, "path", ev.Path, "error", ev.Err)
		s.notifier.Notify(NoticeUnreachable)

	default:
		s.log.Warn(ctx, "unknown transport event", "kind", ev.Kind)
	}
}

func (s *Supervisor) navigate(ctx context.Context, path string) {
	if _, err := s.nav.Navigate(ctx, path); err != nil {
		s.log.Error(ctx, "navigation failed", "path", path, "error", err)
	}
}
