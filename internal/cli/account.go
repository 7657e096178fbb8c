package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/mmynk/costs/internal/models"
)

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: register takes no arguments", ErrUsage)
	}

	var in models.RegisterInput
	var err error
	if in.Name, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Password, err = GetPassword("Password", a.out); err != nil {
		return err
	}
	if in.ConfirmPassword, err = GetPassword("Confirm password", a.out); err != nil {
		return err
	}

	user, err := a.accounts.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", user.Name)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: login takes no arguments", ErrUsage)
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	user, err := a.accounts.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s <%s>.\n", user.Name, user.Email)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.accounts.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	user := a.accounts.CurrentUser(ctx)
	if user == nil {
		return models.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := a.flagSet("profile")
	name := fs.String("name", "", "new display name")
	email := fs.String("email", "", "new email address")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	var patch models.ProfilePatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "email":
			patch.Email = email
		}
	})
	if patch.Name == nil && patch.Email == nil {
		return fmt.Errorf("%w: profile needs -name or -email", ErrUsage)
	}

	user, err := a.accounts.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}
