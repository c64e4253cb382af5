package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/client/router"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// ---- fakes ----

type fakeSession struct {
	token   string
	profile *models.User

	loginToken   string
	loginProfile *models.User
	loginErr     error
	loginArgs    [2]string

	registerErr error
	registered  *models.RegisterPayload

	fetched  *models.User
	fetchErr error
	fetches  int

	updateErr error
	updated   *models.UpdateProfilePayload

	avatarURL  string
	avatarErr  error
	avatarName string
	avatarBody string

	logouts int
}

func (s *fakeSession) IsAuthenticated() bool { return s.token != "" }
func (s *fakeSession) Token() string         { return s.token }
func (s *fakeSession) Profile() *models.User { return s.profile.Clone() }

func (s *fakeSession) Login(_ context.Context, username, password string) error {
	s.loginArgs = [2]string{username, password}
	if s.loginToken == "" {
		return s.loginErr
	}
	s.token = s.loginToken
	s.profile = s.loginProfile.Clone()
	return s.loginErr
}

func (s *fakeSession) Register(_ context.Context, p models.RegisterPayload) error {
	s.registered = &p
	if s.registerErr != nil {
		return s.registerErr
	}
	s.token = "Bearer registered"
	s.profile = &models.User{Username: p.Username, Role: models.RoleUser}
	return nil
}

func (s *fakeSession) FetchProfile(context.Context) error {
	s.fetches++
	if s.token == "" {
		return nil
	}
	if s.fetchErr != nil {
		return s.fetchErr
	}
	s.profile = s.fetched.Clone()
	return nil
}

func (s *fakeSession) UpdateProfile(_ context.Context, p models.UpdateProfilePayload) (*models.User, error) {
	s.updated = &p
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	u := s.profile.Clone()
	if p.Nickname != nil {
		u.Nickname = *p.Nickname
	}
	s.profile = u.Clone()
	return u, nil
}

func (s *fakeSession) UploadAvatar(_ context.Context, filename string, content io.Reader) (string, error) {
	b, _ := io.ReadAll(content)
	s.avatarName, s.avatarBody = filename, string(b)
	return s.avatarURL, s.avatarErr
}

func (s *fakeSession) Logout(context.Context) {
	s.logouts++
	s.token = ""
	s.profile = nil
}

type fakeAdmin struct {
	users   []models.User
	listErr error

	changedID   uint64
	changedRole models.Role
	change      *models.RoleChange
	changeErr   error
}

func (f *fakeAdmin) ListUsers(context.Context) ([]models.User, error) {
	return f.users, f.listErr
}

func (f *fakeAdmin) ChangeUserRole(_ context.Context, id uint64, role models.Role) (*models.RoleChange, error) {
	f.changedID, f.changedRole = id, role
	return f.change, f.changeErr
}

// ---- helpers ----

type testApp struct {
	*App
	out   *bytes.Buffer
	lines *[]string
}

func newTestApp(t *testing.T, s *fakeSession, admin *fakeAdmin) *testApp {
	t.Helper()
	if admin == nil {
		admin = &fakeAdmin{}
	}
	nav, err := router.NewNavigator(router.DefaultRoutes(), router.NewAuthorizer(s, logging.Nop()), logging.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	a := NewApp(s, admin, nav, logging.Nop())
	a.reader = bufio.NewReader(strings.NewReader(""))
	a.out = &out
	return &testApp{App: a, out: &out, lines: captureOutput(t)}
}

// stubInputs feeds answers to the prompt seams in order.
func stubInputs(t *testing.T, texts []string, passwords []string, confirms []bool) {
	t.Helper()
	origST, origGP, origGC := getSimpleText, getPassword, getConfirmation
	t.Cleanup(func() {
		getSimpleText, getPassword, getConfirmation = origST, origGP, origGC
	})

	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		require.NotEmpty(t, texts, "unexpected prompt %q", prompt)
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(prompt string, _ io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt %q", prompt)
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	getConfirmation = func(_ *bufio.Reader, prompt string, _ io.Writer) (bool, error) {
		require.NotEmpty(t, confirms, "unexpected confirmation %q", prompt)
		v := confirms[0]
		confirms = confirms[1:]
		return v, nil
	}
}

var (
	alice = &models.User{ID: 1, Username: "alice", Role: models.RoleUser, Nickname: "Al", Email: "al@example.com"}
	root  = &models.User{ID: 2, Username: "root", Role: models.RoleAdmin}
)
