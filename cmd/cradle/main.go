package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/terraincognita07/cradle/internal/cli"
	"github.com/terraincognita07/cradle/internal/config"
	"github.com/terraincognita07/cradle/internal/db"
	"github.com/terraincognita07/cradle/internal/services"
	"go.uber.org/fx"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if err := runResetPassword(os.Args[2:], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "reset-password: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fx.New(
		fx.Provide(config.Load),
		appOptions(),
	).Run()
}

func runResetPassword(args []string, stdin *os.File, stdout io.Writer) error {
	flags := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	flags.SetOutput(stdout)
	email := flags.String("email", "", "account e-mail address")
	if err := flags.Parse(args); err != nil {
		return err
	}

	settings, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	database, err := db.Open(settings.URL, settings.SQLitePath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := services.NewAuthService(db.NewRepositories(database).Users, services.WithLogger(logger))
	return cli.RunResetPasswordCommand(authService, *email, stdin, stdout)
}
