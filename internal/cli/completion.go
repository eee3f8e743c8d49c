package cli

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// completeWord splits line at the cursor into the text before the word
// being typed, its completions and the text after the cursor. complete
// receives everything up to the cursor.
func completeWord(line string, pos int, complete func(before string) []string) (string, []string, string) {
	runes := []rune(line)
	if pos < 0 || pos > len(runes) {
		pos = len(runes)
	}
	before, tail := string(runes[:pos]), string(runes[pos:])

	start := 0
	if i := strings.LastIndexFunc(before, unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(before[i:])
		start = i + size
	}
	head := before[:start]

	candidates := complete(before)
	completions := make([]string, 0, len(candidates))
	for _, c := range candidates {
		completions = append(completions, c+" ")
	}
	return head, completions, tail
}
