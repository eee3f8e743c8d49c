package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "DEVCONSOLE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans a line using the default size limit.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputWithLimit(input, getMaxInputSize())
}

// SanitizeInputWithLimit checks a raw line against limit and UTF-8, then
// drops control runes other than the token separators. Oversized lines are
// an error: a truncated line could still resolve to a different command.
func SanitizeInputWithLimit(input string, limit int) (string, error) {
	switch {
	case len(input) > limit:
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	case !utf8.ValidString(input):
		return "", ErrInvalidUTF8
	case strings.IndexFunc(input, isStrayControl) < 0:
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isStrayControl(r) {
			return -1
		}
		return r
	}, input), nil
}

// isStrayControl reports control runes that would reach the terminal or the
// logs verbatim. Tab and line breaks separate tokens and are kept.
func isStrayControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return unicode.IsControl(r)
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
