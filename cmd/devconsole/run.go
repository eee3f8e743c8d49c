package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/internal/cli"
	"github.com/aretw0/devconsole/pkg/runner"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive console",
		Long: `Reads console lines from stdin until EOF, "exit" or "quit".

On a terminal the prompt supports tab completion and history. Piped input is
evaluated line by line without a prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")
			history, _ := cmd.Flags().GetString("history")

			sm := runner.NewSignalManager(cmd.Context())
			defer sm.Stop()
			ctx := sm.Context()

			s, err := a.newSession(cmd.OutOrStdout(), nil)
			if err != nil {
				return err
			}
			defer s.close()
			s.follow(ctx, a)

			return cli.Run(ctx, s.console, cli.Config{
				Prompt:       a.cfg.Prompt,
				HistoryFile:  history,
				JSON:         jsonMode,
				Version:      devconsole.Version,
				MaxInputSize: a.cfg.MaxInputSize,
				Logger:       a.logger,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("json", false, "Read JSON encoded lines and write JSON reports")
	cmd.Flags().String("history", defaultHistoryFile(), "Prompt history file, empty to disable")
	return cmd
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "devconsole", "history")
}
