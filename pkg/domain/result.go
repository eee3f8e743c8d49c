package domain

// Outcome describes how a line ended.
type Outcome string

const (
	// OutcomeExecuted means the chain reached a terminal node and ran it.
	OutcomeExecuted Outcome = "executed"
	// OutcomeIncomplete means the tokens ran out on an intermediate node.
	OutcomeIncomplete Outcome = "incomplete"
)

// Suggestions is the advisory autocomplete data for a cursor position.
type Suggestions struct {
	Candidates []string `json:"candidates"`
	Message    string   `json:"message,omitempty"`
}

// Result is the successful resolution of a line.
type Result struct {
	LineID      string       `json:"line_id"`
	Outcome     Outcome      `json:"outcome"`
	Steps       int          `json:"steps"`
	Suggestions *Suggestions `json:"suggestions,omitempty"`
}

// Executed reports whether the line ran a terminal node.
func (r *Result) Executed() bool {
	return r != nil && r.Outcome == OutcomeExecuted
}
