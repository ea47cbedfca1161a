package main

import (
	"bufio"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/BRENHINES/SUPRSS/internal/bootstrap"
	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
	"github.com/BRENHINES/SUPRSS/internal/ports"
	"github.com/BRENHINES/SUPRSS/internal/service"
)

func newApp(ctx *commandContext) (*bootstrap.App, error) {
	return bootstrap.NewApp(ctx.Config, ctx.Logger)
}

// readSecret reads one line from stdin after printing a prompt. Used when
// a password flag is left empty so credentials stay out of shell history.
func readSecret(prompt string) (string, error) {
	if err := writef(os.Stderr, "%s: ", prompt); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	identifier := fs.String("user", "", "username or email")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *identifier == "" {
		return errors.New("-user is required")
	}
	if *password == "" {
		secret, err := readSecret("password")
		if err != nil {
			return err
		}
		*password = secret
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Controller.Start(ctx.Ctx)
	target, err := app.Controller.Login(ctx.Ctx, *identifier, *password)
	if err != nil {
		return err
	}

	ident := app.Controller.Identity()
	return writef(os.Stdout, "logged in as %s (%s), continue at %s\n", ident.Username, ident.Email, target)
}

func runRegister(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	username := fs.String("username", "", "username")
	fullName := fs.String("full-name", "", "full name (optional)")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *username == "" {
		return errors.New("-email and -username are required")
	}
	if *password == "" {
		secret, err := readSecret("password")
		if err != nil {
			return err
		}
		*password = secret
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Controller.Start(ctx.Ctx)
	target, err := app.Controller.Register(ctx.Ctx, ports.RegisterInput{
		Email:    *email,
		Username: *username,
		Password: *password,
		FullName: *fullName,
	})
	if err != nil {
		return err
	}

	return writef(os.Stdout, "account created, continue at %s\n", target)
}

func runLogout(ctx *commandContext, args []string) error {
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Controller.Start(ctx.Ctx)
	app.Controller.Logout(ctx.Ctx)
	return writef(os.Stdout, "logged out\n")
}

func runWhoami(ctx *commandContext, args []string) error {
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	state := app.Controller.Start(ctx.Ctx)
	if state != domainauth.StateAuthenticated {
		return writef(os.Stdout, "not logged in\n")
	}

	ident := app.Controller.Identity()
	if err := writef(os.Stdout, "id:       %s\nusername: %s\nemail:    %s\n", ident.ID, ident.Username, ident.Email); err != nil {
		return err
	}
	if ident.FullName != "" {
		if err := writef(os.Stdout, "name:     %s\n", ident.FullName); err != nil {
			return err
		}
	}
	return writef(os.Stdout, "onboarded: %t\n", app.Controller.IsOnboarded())
}

func runOnboardDone(ctx *commandContext, args []string) error {
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if state := app.Controller.Start(ctx.Ctx); state != domainauth.StateAuthenticated {
		return errors.New("not logged in")
	}
	if err := app.Controller.MarkOnboarded(); err != nil {
		return err
	}
	return writef(os.Stdout, "onboarding complete\n")
}

func runOAuthURL(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("oauth-url", flag.ExitOnError)
	provider := fs.String("provider", "", "delegated login provider name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if *provider == "" {
		names := app.OAuth.Providers()
		if len(names) == 0 {
			return errors.New("no delegated login providers configured")
		}
		return writef(os.Stdout, "configured providers: %s\n", strings.Join(names, ", "))
	}

	authURL, state, err := app.OAuth.AuthorizeURL(*provider)
	if err != nil {
		return err
	}
	if err := writef(os.Stdout, "%s\n", authURL); err != nil {
		return err
	}
	return writef(os.Stderr, "state: %s\n", state)
}

func runOAuthComplete(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("oauth-complete", flag.ExitOnError)
	provider := fs.String("provider", "", "delegated login provider name")
	accessToken := fs.String("access-token", "", "access token from a redirect-style callback")
	refreshToken := fs.String("refresh-token", "", "refresh token from a redirect-style callback")
	code := fs.String("code", "", "authorization code from a code-style callback")
	state := fs.String("state", "", "opaque state echoed by the provider")
	next := fs.String("next", "", "in-app destination after login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Controller.Start(ctx.Ctx)
	target, err := app.Controller.CompleteOAuth(ctx.Ctx, service.OAuthCallback{
		Provider:     *provider,
		AccessToken:  *accessToken,
		RefreshToken: *refreshToken,
		Code:         *code,
		State:        *state,
		Next:         *next,
	})
	if err != nil {
		return err
	}

	ident := app.Controller.Identity()
	return writef(os.Stdout, "logged in as %s, continue at %s\n", ident.Username, target)
}
