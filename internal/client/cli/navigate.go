package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/client/router"
)

// Go navigates to path and renders the page it ends on.
func (a *App) Go(ctx context.Context, path string) error {
	loc, err := a.nav.Navigate(ctx, path)
	if err != nil {
		printlnFn("Navigation failed:", err.Error())
		return err
	}

	if loc.Redirected() {
		printlnFn(fmt.Sprintf("Redirected from %s to %s: %s", loc.RedirectedFrom, loc.Path, loc.Decision.Reason))
	}
	return a.render(ctx, loc)
}

func (a *App) render(ctx context.Context, loc router.Location) error {
	switch loc.Route.Name {
	case router.Profile:
		return a.WhoAmI(ctx)
	case router.AdminUsers:
		return a.listUsers(ctx)
	case router.NewsDetail:
		printlnFn(fmt.Sprintf("%s: article %s", loc.Path, loc.Params["id"]))
	case router.Login:
		printlnFn(fmt.Sprintf("%s: use 'login' to sign in", loc.Path))
	case router.Register:
		printlnFn(fmt.Sprintf("%s: use 'register' to create an account", loc.Path))
	default:
		printlnFn(fmt.Sprintf("%s: %s", loc.Path, loc.Route.Name))
	}
	return nil
}

// Users opens the user administration page.
func (a *App) Users(ctx context.Context) error {
	return a.Go(ctx, "/admin/users")
}

func (a *App) listUsers(ctx context.Context) error {
	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		a.report(ctx, "Listing users", err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tNICKNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.Nickname, u.Email)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d user(s)", len(users)))
	return nil
}

// ChangeRole sets the role of user id after a confirmation. The server
// enforces admin rights.
func (a *App) ChangeRole(ctx context.Context, id, role string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	userID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		printlnFn("Invalid user id:", id)
		return err
	}
	r := models.Role(role)
	if !r.Valid() {
		printlnFn("Invalid role:", role, "(want user or admin)")
		return fmt.Errorf("invalid role %q", role)
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Set role of user %d to %s?", userID, r), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	rc, err := a.admin.ChangeUserRole(ctx, userID, r)
	if err != nil {
		a.report(ctx, "Role change", err)
		return err
	}
	printlnFn(fmt.Sprintf("%s: user %d is now %s", rc.Message, rc.UserID, rc.NewRole))

	// a changed own role only shows after a profile refresh
	if p := a.session.Profile(); p != nil && p.ID == userID {
		if err := a.session.FetchProfile(ctx); err != nil {
			a.log.Warn(ctx, "refresh own profile after role change", "error", err)
		}
	}
	return nil
}
