package cli

import (
	"context"
	"fmt"
)

type AccountSignupCmd struct {
	Email string `arg:"" help:"Email address for the new account."`
}

func (c *AccountSignupCmd) Run(ctx *Context) error {
	coord, err := ctx.requireSync()
	if err != nil {
		return err
	}

	password, err := promptPassword("Choose a password")
	if err != nil {
		return err
	}

	if err := coord.SignUp(context.Background(), c.Email, password); err != nil {
		return fmt.Errorf("sign-up failed: %w", err)
	}

	fmt.Printf("Account created and signed in as %s\n", c.Email)
	return nil
}

type AccountLoginCmd struct {
	Email string `arg:"" help:"Account email address."`
}

func (c *AccountLoginCmd) Run(ctx *Context) error {
	coord, err := ctx.requireSync()
	if err != nil {
		return err
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	if err := coord.SignIn(context.Background(), c.Email, password); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	fmt.Printf("Signed in as %s\n", c.Email)
	fmt.Printf("Loaded %d meals from the cloud\n", len(ctx.Manager.Meals()))
	return nil
}

type AccountLogoutCmd struct{}

func (c *AccountLogoutCmd) Run(ctx *Context) error {
	coord, err := ctx.requireSync()
	if err != nil {
		return err
	}

	if err := coord.Logout(); err != nil {
		return err
	}

	fmt.Println("Signed out. Your cloud data is untouched; local guest data remains available.")
	return nil
}

type AccountSyncCmd struct{}

func (c *AccountSyncCmd) Run(ctx *Context) error {
	coord, err := ctx.requireSync()
	if err != nil {
		return err
	}
	if _, ok := coord.Session(); !ok {
		return fmt.Errorf("not signed in; run 'rotation account login' first")
	}

	if err := coord.Pull(context.Background()); err != nil {
		return err
	}

	fmt.Printf("Synced. %d meals in your library.\n", len(ctx.Manager.Meals()))
	return nil
}

type AccountStatusCmd struct{}

func (c *AccountStatusCmd) Run(ctx *Context) error {
	identity := ctx.Manager.Identity()
	fmt.Printf("Namespace: %s\n", identity.Namespace())

	if ctx.Sync == nil {
		fmt.Println("Cloud sync: not configured")
		return nil
	}

	fmt.Printf("Cloud sync: %s\n", ctx.Sync.State())
	if session, ok := ctx.Sync.Session(); ok {
		fmt.Printf("Signed in as: %s\n", session.Email)
	}
	return nil
}
