package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// Tree is a set of root commands, such as a devconsole.Console.
type Tree interface {
	Commands() []string
	Root(word string) (domain.Node, bool)
}

// GraphOverlay marks nodes on the graph by path, e.g. "hand add".
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart of the command tree.
// Shapes:
// - Root command: ((Circle))
// - Intermediate: [Rectangle]
// - Terminal: ([Stadium])
// Edges are labelled with the tokens that select the next node. Aliases of
// the same node share one edge. Default and end commands use dotted edges.
// Nodes must be comparable, which holds for the pointer types of package
// command.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(tree Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	w := &walker{sb: &sb, seen: make(map[domain.Node]string)}
	for _, word := range tree.Commands() {
		root, ok := tree.Root(word)
		if !ok {
			continue
		}
		w.node([]string{word}, root, true)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, p := range overlay.VisitedNodes {
			id := pathID(strings.Fields(p))
			if id != "" && !visited[id] {
				visited[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", pathID(strings.Fields(overlay.CurrentNode)))
		}
	}
	return sb.String()
}

type walker struct {
	sb *strings.Builder
	// seen maps nodes already drawn to their id; shared nodes are drawn once.
	seen map[domain.Node]string
}

// node draws n at path and everything below it, returning its id.
func (w *walker) node(path []string, n domain.Node, root bool) string {
	if id, ok := w.seen[n]; ok {
		return id
	}
	id := pathID(path)
	w.seen[n] = id

	label := path[len(path)-1]
	opener, closer := "[", "]"
	switch {
	case root:
		opener, closer = "((", "))"
	case n.Kind() == domain.KindTerminal:
		opener, closer = "([", "])"
	}
	fmt.Fprintf(w.sb, "    %s%s\"%s\"%s\n", id, opener, escape(label), closer)

	in, ok := n.(*command.Intermediate)
	if !ok {
		return id
	}

	// Group aliases by target, keeping the sorted token order.
	var order []domain.Node
	tokens := make(map[domain.Node][]string)
	for _, token := range in.SubCommandTokens() {
		next, _ := in.SubCommand(token)
		if _, ok := tokens[next]; !ok {
			order = append(order, next)
		}
		tokens[next] = append(tokens[next], token)
	}
	for _, next := range order {
		names := tokens[next]
		to := w.node(append(path[:len(path):len(path)], longest(names)), next, false)
		fmt.Fprintf(w.sb, "    %s -- \"%s\" --> %s\n", id, escape(strings.Join(names, ", ")), to)
	}

	if def := in.DefaultSubCommand(); def != nil {
		to := w.node(append(path[:len(path):len(path)], "any"), def, false)
		fmt.Fprintf(w.sb, "    %s -. any .-> %s\n", id, to)
	}
	if end := in.EndCommand(); end != nil {
		to := w.node(append(path[:len(path):len(path)], "end"), end, false)
		fmt.Fprintf(w.sb, "    %s -. end .-> %s\n", id, to)
	}
	return id
}

// longest picks the full word among a token and its aliases.
func longest(names []string) string {
	best := names[0]
	for _, n := range names[1:] {
		if len(n) > len(best) {
			best = n
		}
	}
	return best
}

func pathID(path []string) string {
	return sanitizeMermaidID(strings.Join(path, "__"))
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
