package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/devconsole/internal/validator"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the command tree for consistency",
		Long: `Crawls every registered command and reports dead ends and autocomplete
candidates that would not resolve.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(io.Discard, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if err := validator.ValidateTree(s.console); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Command tree is valid")
			return nil
		},
	}
}
