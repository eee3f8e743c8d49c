package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [line...]",
		Short: "Print the autocomplete candidates for a partial line",
		Long: `Prints the candidates for the last token of the line, one per line.
Pass a trailing empty argument to complete the next token, e.g.
devconsole complete hand "".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			s, err := a.newSession(out, nil)
			if err != nil {
				return err
			}
			defer s.close()

			line := strings.Join(args, " ")
			if len(args) > 0 && args[len(args)-1] == "" {
				line += " "
			}
			suggestions := s.console.Complete(cmd.Context(), line)

			if jsonMode {
				return json.NewEncoder(out).Encode(suggestions)
			}
			if len(suggestions.Candidates) == 0 {
				fmt.Fprintln(out, suggestions.Message)
				return nil
			}
			for _, c := range suggestions.Candidates {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Write the suggestions as JSON")
	return cmd
}
