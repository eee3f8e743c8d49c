package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`     _                                       _      `,
	`  __| | _____   _____ ___  _ __  ___  ___ | | ___ `,
	` / _' |/ _ \ \ / / __/ _ \| '_ \/ __|/ _ \| |/ _ \`,
	`| (_| |  __/\ V / (_| (_) | | | \__ \ (_) | |  __/`,
	` \__,_|\___| \_/ \___\___/|_| |_|___/\___/|_|\___|`,
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the banner and the version to w using profile p.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, p.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}

// NewErrorStyle colors error lines red.
func NewErrorStyle(p termenv.Profile) func(string) string {
	return func(s string) string {
		return p.String(s).Foreground(p.Color("#f87171")).String()
	}
}

// NewHintStyle colors hints such as "did you mean" yellow.
func NewHintStyle(p termenv.Profile) func(string) string {
	return func(s string) string {
		return p.String(s).Foreground(p.Color("#facc15")).Italic().String()
	}
}
