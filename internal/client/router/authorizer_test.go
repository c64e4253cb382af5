package router

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// fakeSession is a hand-rolled Session. FetchProfile installs Fetched (or
// returns FetchErr) and counts calls.
type fakeSession struct {
	Token    string
	Cached   *models.User
	Fetched  *models.User
	FetchErr error
	// OnFetch runs inside FetchProfile before it returns.
	OnFetch func()

	fetches atomic.Int32
}

func (s *fakeSession) IsAuthenticated() bool { return s.Token != "" }

func (s *fakeSession) Profile() *models.User { return s.Cached.Clone() }

func (s *fakeSession) FetchProfile(context.Context) error {
	s.fetches.Add(1)
	if s.OnFetch != nil {
		s.OnFetch()
	}
	if s.Token == "" {
		return nil
	}
	if s.FetchErr != nil {
		return s.FetchErr
	}
	s.Cached = s.Fetched.Clone()
	return nil
}

var (
	adminUser   = &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}
	regularUser = &models.User{ID: 2, Username: "alice", Role: models.RoleUser}
)

func authorize(s *fakeSession, r Route) Outcome {
	return NewAuthorizer(s, logging.Nop()).Authorize(context.Background(), r).Outcome
}

// every session shape the authorizer can observe
func sessionShapes() map[string]func() *fakeSession {
	return map[string]func() *fakeSession{
		"anonymous":            func() *fakeSession { return &fakeSession{} },
		"token only":           func() *fakeSession { return &fakeSession{Token: "t", Fetched: regularUser} },
		"token, fetch fails":   func() *fakeSession { return &fakeSession{Token: "t", FetchErr: errors.New("boom")} },
		"user cached":          func() *fakeSession { return &fakeSession{Token: "t", Cached: regularUser} },
		"admin cached":         func() *fakeSession { return &fakeSession{Token: "t", Cached: adminUser} },
		"admin after fetch":    func() *fakeSession { return &fakeSession{Token: "t", Fetched: adminUser} },
		"stale profile no tok": func() *fakeSession { return &fakeSession{Cached: adminUser} },
	}
}

func TestAuthorize_PublicRoutesAlwaysAllowed(t *testing.T) {
	for _, r := range DefaultRoutes().Routes() {
		if r.Requires != 0 {
			continue
		}
		for name, mk := range sessionShapes() {
			s := mk()
			assert.Equal(t, Allow, authorize(s, r), "%s / %s", r.Name, name)
			assert.Zero(t, s.fetches.Load(), "public routes never fetch")
		}
	}
}

func TestAuthorize_AuthRouteAllowedIffCredentialPresent(t *testing.T) {
	profile, _ := DefaultRoutes().Named(Profile)
	for name, mk := range sessionShapes() {
		s := mk()
		want := RedirectLogin
		if s.IsAuthenticated() {
			want = Allow
		}
		assert.Equal(t, want, authorize(s, profile), name)
	}
}

func TestAuthorize_AdminRoutes(t *testing.T) {
	tests := map[string]Outcome{
		"anonymous":            RedirectLogin,
		"token only":           RedirectHome,
		"token, fetch fails":   RedirectLogin,
		"user cached":          RedirectHome,
		"admin cached":         Allow,
		"admin after fetch":    Allow,
		"stale profile no tok": RedirectLogin,
	}
	shapes := sessionShapes()

	for _, name := range []string{AdminUsers, AdminArticles} {
		r, _ := DefaultRoutes().Named(name)
		for shape, want := range tests {
			assert.Equal(t, want, authorize(shapes[shape](), r), "%s / %s", name, shape)
		}
	}
}

func TestAuthorize_AdminOnlyRequirementStillChecksCredential(t *testing.T) {
	r := Route{Name: "x", Path: "/x", Requires: RequiresAdmin}
	s := &fakeSession{Cached: adminUser}

	assert.Equal(t, RedirectLogin, authorize(s, r))
	assert.Zero(t, s.fetches.Load())
}

func TestAuthorize_FetchesOnlyWhenProfileMissing(t *testing.T) {
	r, _ := DefaultRoutes().Named(AdminUsers)

	cached := &fakeSession{Token: "t", Cached: adminUser}
	authorize(cached, r)
	assert.Zero(t, cached.fetches.Load())

	missing := &fakeSession{Token: "t", Fetched: adminUser}
	authorize(missing, r)
	assert.Equal(t, int32(1), missing.fetches.Load())
}

func TestAuthorize_SessionEndedDuringFetch(t *testing.T) {
	r, _ := DefaultRoutes().Named(AdminUsers)
	s := &fakeSession{Token: "t", Fetched: adminUser}
	s.OnFetch = func() { s.Token = "" }

	assert.Equal(t, RedirectLogin, authorize(s, r))
}

func TestAuthorize_DecisionCarriesReason(t *testing.T) {
	r, _ := DefaultRoutes().Named(AdminUsers)
	d := NewAuthorizer(&fakeSession{Token: "t", Cached: regularUser}, logging.Nop()).Authorize(context.Background(), r)

	assert.Equal(t, RedirectHome, d.Outcome)
	assert.Equal(t, Home, d.Outcome.Target())
	assert.NotEmpty(t, d.Reason)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
	assert.Equal(t, "unknown", Outcome(42).String())
	assert.Empty(t, Allow.Target())
	assert.Equal(t, Login, RedirectLogin.Target())
}
