package router

import (
	"net/url"
	"strings"
)

// Requirement is the set of gates declared on a route.
type Requirement uint8

const (
	RequiresAuth Requirement = 1 << iota
	RequiresAdmin
)

// Has reports whether every gate in other is declared in r.
func (r Requirement) Has(other Requirement) bool {
	return r&other == other
}

func (r Requirement) String() string {
	switch {
	case r.Has(RequiresAuth | RequiresAdmin):
		return "auth+admin"
	case r.Has(RequiresAdmin):
		return "admin"
	case r.Has(RequiresAuth):
		return "auth"
	default:
		return "none"
	}
}

// Route names used as redirect targets.
const (
	Home             = "Home"
	CurrencyExchange = "CurrencyExchange"
	News             = "News"
	NewsDetail       = "NewsDetail"
	Login            = "Login"
	Register         = "Register"
	Profile          = "Profile"
	AdminUsers       = "AdminUsers"
	AdminArticles    = "AdminArticles"
)

// Route is a navigable destination. Path segments starting with ':' match
// any single non-empty segment and are returned as parameters.
type Route struct {
	Name     string
	Path     string
	Requires Requirement
}

// Table is an ordered route table. The first matching route wins.
type Table struct {
	routes []Route
}

func NewTable(routes ...Route) *Table {
	return &Table{routes: append([]Route(nil), routes...)}
}

// DefaultRoutes returns the destinations exposed by the application.
func DefaultRoutes() *Table {
	return NewTable(
		Route{Name: Home, Path: "/"},
		Route{Name: CurrencyExchange, Path: "/exchange"},
		Route{Name: News, Path: "/news"},
		Route{Name: NewsDetail, Path: "/news/:id"},
		Route{Name: Login, Path: "/login"},
		Route{Name: Register, Path: "/register"},
		Route{Name: Profile, Path: "/profile", Requires: RequiresAuth},
		Route{Name: AdminUsers, Path: "/admin/users", Requires: RequiresAuth | RequiresAdmin},
		Route{Name: AdminArticles, Path: "/admin/articles", Requires: RequiresAuth | RequiresAdmin},
	)
}

// Routes returns a copy of the table's routes in match order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Named looks a route up by name.
func (t *Table) Named(name string) (Route, bool) {
	for _, r := range t.routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Match resolves path against the table. The query string and a trailing
// slash are ignored.
func (t *Table) Match(path string) (Route, map[string]string, bool) {
	segs := splitPath(path)
	for _, r := range t.routes {
		if params, ok := matchSegments(splitPath(r.Path), segs); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// CleanPath strips the query string and trailing slash and ensures a
// leading slash.
func CleanPath(path string) string {
	return "/" + strings.Join(splitPath(path), "/")
}

func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			v, err := url.PathUnescape(segs[i])
			if err != nil {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = v
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
