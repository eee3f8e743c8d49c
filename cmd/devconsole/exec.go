package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/internal/cli"
	"github.com/aretw0/devconsole/pkg/runner"
)

// errReported marks a failure whose message was already written.
var errReported = errors.New("line failed")

func newExecCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [line...]",
		Short: "Evaluate one console line, or every line read from stdin",
		Example: `  devconsole exec player spawn
  devconsole exec --json hand add strike_r 2
  printf 'player spawn\nhand show\n' | devconsole exec`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			s, err := a.newSession(out, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if len(args) == 0 {
				return cli.Run(cmd.Context(), s.console, cli.Config{
					JSON:         jsonMode,
					MaxInputSize: a.cfg.MaxInputSize,
					Logger:       a.logger,
				}, cmd.InOrStdin(), out)
			}

			line, err := runner.SanitizeInputWithLimit(strings.Join(args, " "), a.cfg.MaxInputSize)
			if err != nil {
				return err
			}
			report := runner.Report{Line: line, Markdown: strings.EqualFold(args[0], devconsole.HelpCommand)}
			report.Result, report.Output, report.Err = s.console.Capture(cmd.Context(), line)

			if jsonMode {
				if err := json.NewEncoder(out).Encode(runner.NewJSONReport(report)); err != nil {
					return err
				}
			} else {
				h := runner.NewTextHandler(cmd.InOrStdin(), out, runner.WithTextHandlerPrompt(""))
				if err := h.Output(cmd.Context(), report); err != nil {
					return err
				}
			}
			if report.Err != nil {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Write JSON reports")
	return cmd
}
