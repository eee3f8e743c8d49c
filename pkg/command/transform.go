package command

import (
	"golang.org/x/text/cases"
)

// TransformFunc normalizes a raw token before lookup.
type TransformFunc func(raw string) string

// CheckFunc returns an error when a node may not run for token.
type CheckFunc func(token string) error

// EndPredicate decides whether an intermediate short-circuits into its end command.
type EndPredicate func(token string, fullCommand []string) bool

// CandidatesFunc produces autocomplete candidates. It is called on every query.
type CandidatesFunc func() []string

// FoldCase is the default token transform. Case folding is idempotent.
func FoldCase(raw string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Fold().String(raw)
}

// Identity keeps the raw token untouched.
func Identity(raw string) string {
	return raw
}

func transformOrDefault(fn TransformFunc) TransformFunc {
	if fn == nil {
		return FoldCase
	}
	return fn
}
