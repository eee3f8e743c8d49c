package runtime

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/aretw0/devconsole/pkg/domain"
)

// Complete returns the suggestions for the last element of fullCommand, the
// token being typed (possibly empty). The tokens before it are resolved with
// Lookup only: no checks run and no side effects happen.
func (e *Executor) Complete(ctx context.Context, root domain.Node, fullCommand []string) domain.Suggestions {
	if root == nil || len(fullCommand) < 2 {
		return domain.Suggestions{}
	}

	current := root
	last := len(fullCommand) - 1
	for i := 1; i < last; i++ {
		router, ok := current.(domain.Router)
		if !ok {
			return domain.Suggestions{}
		}
		next, err := router.Lookup(current.TransformToken(fullCommand[i]), fullCommand)
		if err != nil {
			var unresolved *domain.UnresolvedTokenError
			if errors.As(err, &unresolved) {
				return domain.Suggestions{Message: unresolved.Message}
			}
			e.logger.Debug("completion lookup failed", "position", i, "err", err)
			return domain.Suggestions{}
		}
		if next == nil || next.Kind() == domain.KindTerminal {
			return domain.Suggestions{}
		}
		current = next
	}

	router, ok := current.(domain.Router)
	if !ok {
		return domain.Suggestions{}
	}
	return domain.Suggestions{
		Candidates: matching(router, fullCommand[last]),
		Message:    router.DefaultAutocompleteMessage(),
	}
}

// matching filters the router's candidates by prefix, comparing transformed forms.
func matching(router domain.Router, partial string) []string {
	prefix := router.TransformToken(partial)
	seen := make(map[string]struct{})
	var out []string
	for _, candidate := range router.PossibleSubCommands() {
		if _, dup := seen[candidate]; dup {
			continue
		}
		if strings.HasPrefix(router.TransformToken(candidate), prefix) {
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
	}
	sort.Strings(out)
	return out
}

// Suggest returns the candidate closest to token within the configured edit
// distance, or "" when none is close enough.
func (e *Executor) Suggest(token string, candidates []string) string {
	return closest(token, candidates, e.suggestionDistance)
}

// closest returns the candidate nearest to token within maxDistance, or "".
// Ties keep the candidate that sorts first.
func closest(token string, candidates []string, maxDistance int) string {
	if maxDistance <= 0 || token == "" {
		return ""
	}
	best := ""
	bestDistance := maxDistance + 1
	for _, candidate := range candidates {
		if candidate == token {
			continue
		}
		d := levenshtein.ComputeDistance(token, candidate)
		if d < bestDistance || (d == bestDistance && candidate < best) {
			best, bestDistance = candidate, d
		}
	}
	if bestDistance > maxDistance {
		return ""
	}
	return best
}
