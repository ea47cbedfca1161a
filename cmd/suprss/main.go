package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/BRENHINES/SUPRSS/config"
	"github.com/BRENHINES/SUPRSS/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate with a username or email and password",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create an account and start a session",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "End the session and clear stored tokens",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the current identity and session state",
			run:         runWhoami,
		},
		"onboard-done": {
			name:        "onboard-done",
			description: "Mark onboarding complete for the current identity",
			run:         runOnboardDone,
		},
		"oauth-url": {
			name:        "oauth-url",
			description: "Print the authorization URL for a delegated login provider",
			run:         runOAuthURL,
		},
		"oauth-complete": {
			name:        "oauth-complete",
			description: "Finish a delegated login with callback tokens or a code",
			run:         runOAuthComplete,
		},
		"forgot-password": {
			name:        "forgot-password",
			description: "Request a password reset email",
			run:         runForgotPassword,
		},
		"reset-password": {
			name:        "reset-password",
			description: "Set a new password using a reset token",
			run:         runResetPassword,
		},
		"verify-email": {
			name:        "verify-email",
			description: "Confirm an email address using a verification token",
			run:         runVerifyEmail,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: suprss <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := cmds[name]
		if err := writef(os.Stdout, "  %-18s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
