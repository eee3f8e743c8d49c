package domain

// Kind tags the variant of a Node.
type Kind int

const (
	// KindIntermediate nodes route a token to the next node of the chain.
	KindIntermediate Kind = iota
	// KindTerminal nodes perform a side effect and end the chain.
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindIntermediate:
		return "intermediate"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Node is one link of a command chain.
//
// Nodes are wired once at registration time and reused for every line; they
// must not keep per-line state. The full command slice handed to Run is shared
// by every node of the chain and must be treated as read-only.
type Node interface {
	// Kind reports which of the two variants the node is.
	Kind() Kind

	// TransformToken normalizes a raw token before CheckCanRun and Run see it.
	TransformToken(raw string) string

	// CheckCanRun returns a *PreconditionError when the node may not run in the
	// current application state. It is always called before Run.
	CheckCanRun(token string) error

	// Run advances the chain. Terminal nodes perform their side effect and
	// return a nil next node.
	Run(token string, fullCommand []string) (Node, error)
}

// Router is implemented by intermediate nodes.
type Router interface {
	Node

	// Lookup resolves the next node for token exactly like Run would, but
	// never executes anything. A short-circuit yields the end node itself.
	Lookup(token string, fullCommand []string) (Node, error)

	// PossibleSubCommands returns autocomplete candidates. It is advisory and
	// never influences resolution.
	PossibleSubCommands() []string

	// DefaultAutocompleteMessage is shown when no candidate matches.
	DefaultAutocompleteMessage() string

	// DefaultErrorMessage is carried by the UnresolvedTokenError raised when a
	// token matches neither the registry nor a default.
	DefaultErrorMessage() string
}
