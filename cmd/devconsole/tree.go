package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/devconsole/internal/presentation/graph"
)

func newTreeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Export the command tree as a Mermaid diagram",
		Long:  `Outputs a Mermaid diagram (graph TD) of every registered command and its sub-commands.`,
		Example: `  devconsole tree
  devconsole tree --highlight "hand add"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			highlight, _ := cmd.Flags().GetString("highlight")

			s, err := a.newSession(io.Discard, nil)
			if err != nil {
				return err
			}
			defer s.close()

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(s.console, overlay(highlight)))
			return nil
		},
	}
	cmd.Flags().String("highlight", "", "Path of command words to highlight, e.g. \"hand add\"")
	return cmd
}

// overlay marks every prefix of path as visited and path itself as current.
func overlay(path string) *graph.GraphOverlay {
	words := strings.Fields(path)
	if len(words) == 0 {
		return nil
	}
	o := &graph.GraphOverlay{CurrentNode: strings.Join(words, " ")}
	for i := 1; i < len(words); i++ {
		o.VisitedNodes = append(o.VisitedNodes, strings.Join(words[:i], " "))
	}
	return o
}
