package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gookit/color"

	"resourcehub/internal/common"
)

// Login prompts for credentials and authenticates against the backend. On
// success the token is persisted by the auth service, so later runs stay
// logged in.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, color.Red.Render("Login unsuccessful: "+err.Error()))
		return err
	}

	// Best effort: the prompt shows the display name when the profile loads.
	if user, err := a.auth.CurrentUser(ctx); err == nil {
		a.userName = user.DisplayName()
	}

	fmt.Fprintln(a.out, color.Green.Render("Login successful"))
	return nil
}

// Logout drops the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, color.Red.Render("Logout failed: "+err.Error()))
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI fetches and prints the profile behind the stored token.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Not logged in")
		} else {
			fmt.Fprintln(a.out, color.Red.Render("error: "+err.Error()))
		}
		return err
	}

	a.userName = user.DisplayName()
	fmt.Fprintf(a.out, "%s <%s>\n", user.DisplayName(), user.Email)
	return nil
}
