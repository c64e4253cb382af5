package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/filex"
)

// openFile is a test seam for os.Open.
var openFile = func(name string) (io.ReadCloser, error) { return os.Open(name) }

var (
	errNotLoggedIn      = errors.New("not logged in")
	errUnsupportedImage = errors.New("unsupported image format")
)

func (a *App) requireLogin() error {
	if a.session.IsAuthenticated() {
		return nil
	}
	printlnFn("Not logged in. Use 'login' or 'register' first.")
	return errNotLoggedIn
}

// WhoAmI prints the current user's profile, loading it when not cached.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if a.session.Profile() == nil {
		if err := a.session.FetchProfile(ctx); err != nil {
			a.report(ctx, "Loading profile", err)
			return err
		}
	}
	p := a.session.Profile()
	if p == nil {
		return errNotLoggedIn
	}
	printProfile(p)
	return nil
}

func printProfile(p *models.User) {
	printlnFn(fmt.Sprintf("Username: %s", p.Username))
	printlnFn(fmt.Sprintf("Role:     %s", p.Role))
	if p.Nickname != "" {
		printlnFn(fmt.Sprintf("Nickname: %s", p.Nickname))
	}
	if p.Email != "" {
		printlnFn(fmt.Sprintf("Email:    %s", p.Email))
	}
	if p.Avatar != "" {
		printlnFn(fmt.Sprintf("Avatar:   %s", p.Avatar))
	}
	if !p.CreatedAt.IsZero() {
		printlnFn(fmt.Sprintf("Joined:   %s", p.CreatedAt.Format("2006-01-02")))
	}
}

// UpdateProfile asks for each editable field; empty answers leave the
// field unchanged and are not sent.
func (a *App) UpdateProfile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var payload models.UpdateProfilePayload
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Nickname (empty to keep)", &payload.Nickname},
		{"Email (empty to keep)", &payload.Email},
		{"Avatar URL (empty to keep)", &payload.Avatar},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = models.StringPtr(v)
		}
	}

	change, err := getConfirmation(a.reader, "Change password?", a.out)
	if err != nil {
		return err
	}
	if change {
		password, err := getPassword("New password", a.out)
		if err != nil {
			return err
		}
		defer wipe(password)
		confirm, err := getPassword("Repeat new password", a.out)
		if err != nil {
			return err
		}
		defer wipe(confirm)
		if string(password) != string(confirm) {
			printlnFn("Update failed:", errPasswordMismatch.Error())
			return errPasswordMismatch
		}
		payload.Password = models.StringPtr(string(password))
	}

	if payload.IsEmpty() {
		printlnFn("Nothing to update")
		return nil
	}

	u, err := a.session.UpdateProfile(ctx, payload)
	if err != nil {
		a.report(ctx, "Update", err)
		return err
	}
	printlnFn("Profile updated")
	printProfile(u)
	return nil
}

// UploadAvatar uploads the image at path as the new avatar.
func (a *App) UploadAvatar(ctx context.Context, path string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if !filex.IsAvatarImage(path) {
		printlnFn("Unsupported image format, use one of:", strings.Join(filex.AvatarExtensions, " "))
		return errUnsupportedImage
	}

	f, err := openFile(path)
	if err != nil {
		printlnFn("Cannot open file:", err.Error())
		return err
	}
	defer f.Close()

	url, err := a.session.UploadAvatar(ctx, filepath.Base(path), f)
	if err != nil {
		a.report(ctx, "Avatar upload", err)
		return err
	}
	printlnFn("Avatar updated:", url)
	return nil
}
