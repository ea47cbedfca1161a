package main

import (
	"errors"
	"flag"
	"os"
)

func runForgotPassword(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "account email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Gateway.ForgotPassword(ctx.Ctx, *email); err != nil {
		return err
	}
	// Always the same message: the backend never confirms whether the
	// address has an account.
	return writef(os.Stdout, "if that address has an account, a reset email is on its way\n")
}

func runResetPassword(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	token := fs.String("token", "", "reset token from the email link")
	password := fs.String("password", "", "new password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("-token is required")
	}
	if *password == "" {
		secret, err := readSecret("new password")
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

	if err := app.Gateway.ResetPassword(ctx.Ctx, *token, *password); err != nil {
		return err
	}
	return writef(os.Stdout, "password updated, log in with the new password\n")
}

func runVerifyEmail(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("verify-email", flag.ExitOnError)
	token := fs.String("token", "", "verification token from the email link")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("-token is required")
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Gateway.VerifyEmail(ctx.Ctx, *token); err != nil {
		return err
	}
	return writef(os.Stdout, "email verified\n")
}
