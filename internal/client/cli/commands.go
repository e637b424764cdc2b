package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/salespoint/salespoint/internal/client/api"
	"github.com/salespoint/salespoint/internal/common"
)

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

	err = a.controller.Login(ctx, api.Credentials{Email: email, Password: string(password)})
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Logged in as %s\n", a.status())
	case errors.Is(err, common.ErrCredentials):
		fmt.Fprintln(a.out, "Invalid email or password.")
	case errors.Is(err, common.ErrNetwork):
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	default:
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
	}
	return err
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.controller.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.apiClient.Me(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.UserName, user.Email)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.apiClient.RefreshSession(ctx); err != nil {
		fmt.Fprintf(a.out, "refresh failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Session refreshed.")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.apiClient.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "server unreachable: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
