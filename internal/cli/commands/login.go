package commands

import (
	"context"
	"fmt"

	"IEats/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login (username or email) and store auth cookie" }
func (loginCmd) Usage() string       { return "login <username|email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	user, err := authService(cfg).Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Fprintf(Out, "Logged in as %s\n", user.Username)
		return nil
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Logout and forget the stored auth cookie" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := authService(cfg).Logout(ctx); err != nil {
		// токен уже удалён локально
		fmt.Fprintf(Out, "Logged out locally (server: %v)\n", err)
		return nil
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show the current user" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	user, err := authService(cfg).CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	fmt.Fprintf(Out, "Logged in as %s (id %d)\n", user.Username, user.ID)
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(meCmd{})
}
