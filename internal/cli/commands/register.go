package commands

import (
	"context"
	"fmt"

	"IEats/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <username> <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	user, err := authService(cfg).Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	name := args[0]
	if user != nil {
		name = user.Username
	}
	fmt.Fprintf(Out, "Registered and logged in as %s\n", name)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
