package client

import "errors"

// EventKind names a globally handled transport failure.
type EventKind int

const (
	EventUnauthorized EventKind = iota + 1
	EventForbidden
	EventServerError
	EventUnreachable
)

func (k EventKind) String() string {
	switch k {
	case EventUnauthorized:
		return "unauthorized"
	case EventForbidden:
		return "forbidden"
	case EventServerError:
		return "server_error"
	case EventUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Event describes a failed call that needs handling outside the caller.
// StatusCode is 0 for EventUnreachable.
type Event struct {
	Kind       EventKind
	Method     string
	Path       string
	StatusCode int
	Err        error
}

// EventHandler receives transport events. Handlers run synchronously on the
// calling goroutine before the failing call returns; they may call back into
// the client.
type EventHandler func(Event)

// eventFor maps a classified error to the event it raises. Application
// errors raise nothing: they belong to the caller alone.
func eventFor(err error) (EventKind, bool) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return EventUnauthorized, true
	case errors.Is(err, ErrForbidden):
		return EventForbidden, true
	case errors.Is(err, ErrServer):
		return EventServerError, true
	case errors.Is(err, ErrUnavailable):
		return EventUnreachable, true
	default:
		return 0, false
	}
}
