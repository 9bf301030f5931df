// Package main is the entry point for the blogpress server. The root
// command serves HTTP; subcommands manage the schema, development data and
// user accounts.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"blogpress/internal/config"
)

// app carries state shared by every subcommand.
type app struct {
	configFile string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "blogpress",
		Short: "Blog platform with an admin back office and a reader area",
		Long: `blogpress serves a JSON API for a small blog: admins manage categories
and posts, signed-in readers browse, filter and comment.

Running without a subcommand is the same as "blogpress serve".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
		RunE: a.serve,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "optional config file (yaml, toml, json or .env)")

	root.AddCommand(
		a.newServeCommand(),
		a.newMigrateCommand(),
		a.newSeedCommand(),
		a.newUserCommand(),
	)
	return root
}

// load reads the configuration and installs the default logger.
func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// newLogger writes text in development and JSON everywhere else.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("blogpress failed", "error", err)
		os.Exit(1)
	}
}
