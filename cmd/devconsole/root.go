package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/devconsole/internal/config"
	"github.com/aretw0/devconsole/internal/logging"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "devconsole",
		Short: "devconsole is a tokenized command console",
		Long: `devconsole resolves whitespace separated command lines through a tree of
intermediate and terminal commands, with autocomplete on every level.

It can run as an interactive prompt, evaluate single lines, or expose the
same console over HTTP and the Model Context Protocol.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default ./devconsole.yaml or ~/.config/devconsole/devconsole.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.String("catalog", "", "Card catalog file (yaml, toml or json)")
	flags.Bool("watch", false, "Reload the catalog when the file changes")
	flags.String("redis-url", "", "Read card ids from a redis set instead of the catalog")
	flags.String("redis-prefix", "devconsole:ids:", "Key prefix of the redis card set")

	// Flags only win when set explicitly, so the config file and the
	// DEVCONSOLE_* variables still apply otherwise.
	for key, name := range map[string]string{
		"log.level":     "log-level",
		"log.json":      "log-json",
		"catalog.path":  "catalog",
		"catalog.watch": "watch",
		"redis.url":     "redis-url",
		"redis.prefix":  "redis-prefix",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newRunCmd(a),
		newExecCmd(a),
		newCompleteCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newTreeCmd(a),
		newValidateCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	if cfg.Log.JSON {
		a.logger = logging.NewJSON(level)
	} else {
		a.logger = logging.New(level)
	}
	slog.SetDefault(a.logger)
	return nil
}
